package store

import "blogspace/app/models"

// PostsState is the displayed posts list together with the pagination cursor.
type PostsState struct {
	Posts   []models.Post `json:"posts"`
	Loading bool          `json:"loading"`
	Page    int           `json:"page"`
	HasMore bool          `json:"hasMore"`
}

// InitialPosts returns the posts slice before anything is loaded.
func InitialPosts() PostsState {
	return PostsState{Posts: []models.Post{}, Page: 1, HasMore: true}
}

// ReducePosts applies an action to the posts slice. The input state is never
// modified.
func ReducePosts(state PostsState, action Action) PostsState {
	switch a := action.(type) {
	case SetPosts:
		state.Posts = append([]models.Post{}, a.Posts...)
	case AppendPosts:
		posts := make([]models.Post, 0, len(state.Posts)+len(a.Posts))
		state.Posts = append(append(posts, state.Posts...), a.Posts...)
	case AddPost:
		posts := make([]models.Post, 0, len(state.Posts)+1)
		state.Posts = append(append(posts, a.Post), state.Posts...)
	case UpdatePost:
		for i := range state.Posts {
			if state.Posts[i].ID == a.Post.ID {
				posts := append([]models.Post{}, state.Posts...)
				posts[i] = a.Post
				state.Posts = posts
				break
			}
		}
	case DeletePost:
		posts := make([]models.Post, 0, len(state.Posts))
		for _, p := range state.Posts {
			if p.ID != a.ID {
				posts = append(posts, p)
			}
		}
		state.Posts = posts
	case SetLoading:
		state.Loading = a.Loading
	case IncrementPage:
		state.Page++
	case SetHasMore:
		state.HasMore = a.HasMore
	case ResetFeed:
		return InitialPosts()
	}
	return state
}

func (s PostsState) clone() PostsState {
	s.Posts = append([]models.Post{}, s.Posts...)
	return s
}
