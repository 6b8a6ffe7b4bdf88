package store

import (
	"sync"
	"testing"

	"blogspace/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDispatch(t *testing.T) {
	s := New()
	ana := models.User{ID: "u1", Username: "ana", Email: "a@x.com"}

	s.Dispatch(Login{User: ana})
	s.Dispatch(AddPost{Post: post("p1")})
	s.Dispatch(AddComment{Comment: comment("c1", "p1")})

	state := s.State()
	assert.True(t, state.Auth.IsAuthenticated)
	assert.Equal(t, []string{"p1"}, ids(state.Posts.Posts))
	assert.Len(t, state.Comments.Comments["p1"], 1)

	assert.Equal(t, "ana", s.Auth().User.Username)
	assert.Len(t, s.Posts().Posts, 1)
	assert.Len(t, s.Comments("p1"), 1)
	assert.Empty(t, s.Comments("p2"))
}

func TestStoreSnapshotsAreCopies(t *testing.T) {
	s := New()
	s.Dispatch(Login{User: models.User{ID: "u1", Username: "ana", Email: "a@x.com"}})
	s.Dispatch(SetPosts{Posts: []models.Post{post("p1")}})
	s.Dispatch(SetComments{PostID: "p1", Comments: []models.Comment{comment("c1", "p1")}})

	snap := s.State()
	snap.Auth.User.Username = "mallory"
	snap.Posts.Posts[0].Title = "changed"
	snap.Comments.Comments["p1"][0].Content = "changed"

	fresh := s.State()
	assert.Equal(t, "ana", fresh.Auth.User.Username)
	assert.Equal(t, "tp1", fresh.Posts.Posts[0].Title)
	assert.Equal(t, "cc1", fresh.Comments.Comments["p1"][0].Content)
}

func TestStoreSubscribe(t *testing.T) {
	s := New()

	var got []string
	unsubscribe := s.Subscribe(func(action Action, state State) {
		got = append(got, action.Type())
	})

	s.Dispatch(SetLoading{Loading: true})
	s.Dispatch(IncrementPage{})
	unsubscribe()
	s.Dispatch(SetLoading{Loading: false})

	assert.Equal(t, []string{"posts/setLoading", "posts/incrementPage"}, got)
}

func TestStoreListenerSeesNewState(t *testing.T) {
	s := New()
	var page int
	s.Subscribe(func(_ Action, state State) { page = state.Posts.Page })

	s.Dispatch(IncrementPage{})
	assert.Equal(t, 2, page)
}

func TestStoreConcurrentDispatch(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(IncrementPage{})
			_ = s.State()
		}()
	}
	wg.Wait()
	require.Equal(t, 51, s.Posts().Page)
}
