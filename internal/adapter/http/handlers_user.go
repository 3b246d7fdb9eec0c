package adapthttp

import "net/http"

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	u := currentUser(r)

	names := s.repo.GetUserNames(ctx, u.ID)
	if !names.IsOK() {
		writeFailure(w, names.Err())
		return
	}
	img := s.repo.GetImageByUserID(ctx, u.ID)
	if !img.IsOK() {
		writeFailure(w, img.Err())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":       u,
		"name":       names.Value(),
		"pictureRef": pictureRef(img.Value()),
	})
}
