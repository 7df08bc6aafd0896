package server

import (
	"net/http"
	"testing"

	"marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	valid := map[string]interface{}{
		"kind":     "product",
		"name":     "Used bike",
		"content":  "Looking for a used road bike in good shape",
		"location": "Lisbon",
		"price":    12000,
	}

	tests := []struct {
		name           string
		body           interface{}
		token          bool
		mockSetup      func(*testEnv)
		expectedStatus int
	}{
		{
			name:  "Success",
			body:  valid,
			token: true,
			mockSetup: func(env *testEnv) {
				env.posts.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Content Too Short",
			body:           map[string]interface{}{"kind": "product", "name": "Bike", "content": "short", "location": "Lisbon"},
			token:          true,
			mockSetup:      func(*testEnv) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed Body",
			body:           "{",
			token:          true,
			mockSetup:      func(*testEnv) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Anonymous",
			body:           valid,
			mockSetup:      func(*testEnv) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			tt.mockSetup(env)
			token := ""
			if tt.token {
				token, _ = tokenFor(t, "alice")
			}

			resp, body := env.do(t, http.MethodPut, "/api/p", tt.body, token)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, "alice", body["author"])
				assert.Equal(t, true, body["published"])
				assert.Equal(t, true, body["you"])
				assert.Equal(t, "120.00", body["price_display"])
				assert.NotEmpty(t, body["hash"])
			} else {
				env.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestViewPost(t *testing.T) {
	t.Run("draft is hidden from others", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.posts.On("GetByHash", mock.Anything, mock.Anything, "p1").
			Return(&models.Post{Hash: "p1", Author: "bob", Published: false}, nil)

		resp, _ := env.do(t, http.MethodGet, "/api/p/p1", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		env.posts.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})

	t.Run("reader view is counted", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.posts.On("GetByHash", mock.Anything, mock.Anything, "p1").
			Return(&models.Post{Hash: "p1", Author: "bob", Published: true, Views: 4}, nil)
		env.posts.On("IncrementViews", mock.Anything, "p1").Return(nil)

		resp, body := env.do(t, http.MethodGet, "/api/p/p1", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(5), body["views"])
		env.posts.AssertExpectations(t)
	})

	t.Run("author view is not counted", func(t *testing.T) {
		env := newTestEnv(t, nil)
		token, _ := tokenFor(t, "bob")
		env.posts.On("GetByHash", mock.Anything, mock.Anything, "p1").
			Return(&models.Post{Hash: "p1", Author: "bob", Published: false, Views: 4}, nil)

		resp, body := env.do(t, http.MethodGet, "/api/p/p1", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(4), body["views"])
		assert.Equal(t, true, body["you"])
		env.posts.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})
}

func TestEditPostPrice(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := tokenFor(t, "alice")
	env.posts.On("UpdateFields", mock.Anything, "alice", "p1", map[string]interface{}{"price": int64(500)}).Return(nil)
	env.posts.On("GetByHash", mock.Anything, mock.Anything, "p1").
		Return(&models.Post{Hash: "p1", Author: "alice", Published: true, Price: 500}, nil)

	resp, body := env.do(t, http.MethodPatch, "/api/p/p1/edit/price", map[string]int{"price": 500}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "5.00", body["price_display"])

	resp, _ = env.do(t, http.MethodPatch, "/api/p/p1/edit/price", map[string]int{"price": -1}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEditPostOfAnotherAuthor(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := tokenFor(t, "mallory")
	env.posts.On("UpdateFields", mock.Anything, "mallory", "p1", mock.Anything).
		Return(models.NewNotFoundError("Post", "p1"))

	resp, _ := env.do(t, http.MethodPatch, "/api/p/p1/edit/content",
		map[string]string{"value": "Replaced content that is long enough"}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublishPost(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := tokenFor(t, "alice")
	env.posts.On("UpdateFields", mock.Anything, "alice", "d1", map[string]interface{}{"published": true}).Return(nil)
	env.posts.On("GetByHash", mock.Anything, mock.Anything, "d1").
		Return(&models.Post{Hash: "d1", Author: "alice", Published: true}, nil)

	resp, body := env.do(t, http.MethodPatch, "/api/p/d1/publish", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["published"])
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := tokenFor(t, "alice")
	env.posts.On("Delete", mock.Anything, "alice", "p1").Return(nil)
	env.posts.On("Delete", mock.Anything, "alice", "p2").Return(models.NewNotFoundError("Post", "p2"))

	resp, _ := env.do(t, http.MethodDelete, "/api/p/p1", nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/p/p2", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
