package adapthttp

import (
	"net/http"
	"strings"

	"lightweight/internal/domain"
)

func (s *Server) handleProfileImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := currentUser(r)

	switch r.Method {
	case http.MethodGet:
		res := s.repo.GetImageByUserID(ctx, u.ID)
		if !res.IsOK() {
			writeFailure(w, res.Err())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"image":      res.Value(),
			"pictureRef": pictureRef(res.Value()),
		})

	case http.MethodPut:
		var body struct {
			URL string `json:"url"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		ref := strings.TrimSpace(body.URL)
		if ref == "" {
			writeValidation(w, &domain.ValidationError{Field: "url", Reason: "Please enter an image URL."})
			return
		}

		res := s.repo.SetProfileImage(ctx, u.ID, ref)
		if !res.IsOK() {
			writeFailure(w, res.Err())
			return
		}
		img := res.Value()
		writeJSON(w, http.StatusOK, map[string]any{"image": img, "pictureRef": img.PictureRef})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func pictureRef(img *domain.ProfileImage) string {
	if img == nil || img.PictureRef == "" {
		return DefaultPictureURL
	}
	return img.PictureRef
}
