package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightweight/internal/domain"
)

func newUser(t *testing.T, db *DB, email, username string) int64 {
	t.Helper()
	id, err := db.InsertUser(context.Background(), &domain.User{
		Email: email, Username: username, Password: "digest", FirstName: "F", LastName: "L",
	})
	require.NoError(t, err)
	return id
}

func TestUserStore(t *testing.T) {
	db := New()
	ctx := context.Background()

	id := newUser(t, db, "bob@x.com", "bob")
	assert.NotZero(t, id)

	_, err := db.InsertUser(ctx, &domain.User{Email: "bob@x.com", Username: "other"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// Usernames are not unique.
	id2 := newUser(t, db, "bob2@x.com", "bob")
	assert.NotEqual(t, id, id2)

	u, err := db.FindUserByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)

	u, err = db.FindUserByCredentials(ctx, "bob", "digest")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)

	u, err = db.FindUserByCredentials(ctx, "bob", "nope")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = db.FindUserByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, u)

	first, err := db.FirstNameByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "F", first)

	_, err = db.LastNameByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	u, err = db.FindUserByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestWeightLogStore(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := newUser(t, db, "a@x.com", "alice")

	for _, d := range []string{"01/05/2024", "12/31/2023", "01/05/2024"} {
		_, err := db.InsertWeightLog(ctx, &domain.WeightLog{UserID: userID, Weight: "170", Date: domain.MustParseDate(d)})
		require.NoError(t, err)
	}

	_, err := db.InsertWeightLog(ctx, &domain.WeightLog{UserID: 999, Weight: "1", Date: domain.MustParseDate("01/01/2024")})
	require.ErrorIs(t, err, ErrForeignKey)

	ordered, err := db.ListWeightLogsByDate(ctx, userID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, "12/31/2023", ordered[0].Date.String())
	assert.Equal(t, int64(1), ordered[1].ID)
	assert.Equal(t, int64(3), ordered[2].ID)

	require.NoError(t, db.DeleteWeightLog(ctx, ordered[0].ID))
	require.NoError(t, db.DeleteWeightLog(ctx, ordered[0].ID))

	all, err := db.ListWeightLogs(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Other user sees nothing
	other, err := db.ListWeightLogs(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestImageStore(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := newUser(t, db, "a@x.com", "alice")

	img, err := db.FindImageByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, img)

	id, err := db.InsertImage(ctx, &domain.ProfileImage{UserID: userID, PictureRef: "https://a/1.png"})
	require.NoError(t, err)
	_, err = db.InsertImage(ctx, &domain.ProfileImage{UserID: userID, PictureRef: "https://a/2.png"})
	require.NoError(t, err)

	img, err = db.FindImageByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, id, img.ID)

	require.NoError(t, db.UpdateImage(ctx, &domain.ProfileImage{ID: id, UserID: userID, PictureRef: "https://a/3.png"}))
	img, _ = db.FindImageByUserID(ctx, userID)
	assert.Equal(t, "https://a/3.png", img.PictureRef)

	replaced, err := db.ReplaceImage(ctx, userID, "https://a/4.png")
	require.NoError(t, err)
	assert.Len(t, db.images, 1)
	img, _ = db.FindImageByUserID(ctx, userID)
	assert.Equal(t, replaced.ID, img.ID)

	require.NoError(t, db.DeleteImagesByUserID(ctx, userID))
	img, _ = db.FindImageByUserID(ctx, userID)
	assert.Nil(t, img)

	_, err = db.ReplaceImage(ctx, 999, "x")
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestDeleteUserCascades(t *testing.T) {
	db := New()
	ctx := context.Background()
	alice := newUser(t, db, "a@x.com", "alice")
	bob := newUser(t, db, "b@x.com", "bob")

	for _, uid := range []int64{alice, bob} {
		_, err := db.InsertWeightLog(ctx, &domain.WeightLog{UserID: uid, Weight: "150", Date: domain.MustParseDate("02/01/2024")})
		require.NoError(t, err)
		_, err = db.InsertImage(ctx, &domain.ProfileImage{UserID: uid, PictureRef: "ref"})
		require.NoError(t, err)
	}

	require.NoError(t, db.DeleteUser(ctx, alice))

	logs, _ := db.ListWeightLogs(ctx, alice)
	assert.Empty(t, logs)
	img, _ := db.FindImageByUserID(ctx, alice)
	assert.Nil(t, img)

	logs, _ = db.ListWeightLogs(ctx, bob)
	assert.Len(t, logs, 1)
	img, _ = db.FindImageByUserID(ctx, bob)
	assert.NotNil(t, img)
}
