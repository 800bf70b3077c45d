package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t)

	teacherToken, _ := env.registerUser(t, "reviewed@example.com", "teacher")
	studentToken, _ := env.registerUser(t, "reviewer@example.com", "student")
	gigID := env.createGig(t, teacherToken, "Guitar Lessons", "music", 20)

	t.Run("rating bounds", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			rec := env.do(t, http.MethodPost, "/api/gigs/"+gigID+"/reviews", studentToken, map[string]any{
				"rating": rating,
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d", rating)
		}
	})

	t.Run("student posts a review", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/gigs/"+gigID+"/reviews", studentToken, map[string]any{
			"rating":  4,
			"title":   "Solid",
			"comment": "Learned three chords",
		})
		require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

		data := decodeResponse(t, rec)["data"].(map[string]any)
		assert.EqualValues(t, 4, data["rating"])
	})

	t.Run("second review of the same gig conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/gigs/"+gigID+"/reviews", studentToken, map[string]any{
			"rating": 5,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("gig rating is a running average", func(t *testing.T) {
		// Three more students rate 2, 3, 5: average of 4,2,3,5 is 3.5.
		for i, rating := range []int{2, 3, 5} {
			token, _ := env.registerUser(t, fmt.Sprintf("rater%d@example.com", i), "student")
			rec := env.do(t, http.MethodPost, "/api/gigs/"+gigID+"/reviews", token, map[string]any{
				"rating": rating,
			})
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		rec := env.do(t, http.MethodGet, "/api/gigs/"+gigID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeResponse(t, rec)["data"].(map[string]any)
		assert.InDelta(t, 3.5, data["rating"].(float64), 0.01)
	})

	t.Run("reviews list is public", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/gigs/"+gigID+"/reviews", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeResponse(t, rec)
		assert.EqualValues(t, 4, body["total"])
	})
}

func TestReplyToReview(t *testing.T) {
	env := newTestEnv(t)

	teacherToken, _ := env.registerUser(t, "replier@example.com", "teacher")
	studentToken, _ := env.registerUser(t, "critic@example.com", "student")
	gigID := env.createGig(t, teacherToken, "Piano Lessons", "music", 30)

	rec := env.do(t, http.MethodPost, "/api/gigs/"+gigID+"/reviews", studentToken, map[string]any{
		"rating":  3,
		"comment": "Too fast",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	reviewID := decodeResponse(t, rec)["data"].(map[string]any)["id"].(string)

	t.Run("another teacher cannot reply", func(t *testing.T) {
		otherToken, _ := env.registerUser(t, "bystander@example.com", "teacher")
		rec := env.do(t, http.MethodPut, "/api/reviews/"+reviewID+"/reply", otherToken, map[string]any{
			"reply": "Not my gig",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("reply is required", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/reviews/"+reviewID+"/reply", teacherToken, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("the gig's teacher replies", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/reviews/"+reviewID+"/reply", teacherToken, map[string]any{
			"reply": "Will slow down next time",
		})
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		data := decodeResponse(t, rec)["data"].(map[string]any)
		assert.Equal(t, "Will slow down next time", data["reply"])
	})
}
