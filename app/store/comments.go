package store

import "blogspace/app/models"

// CommentsState holds the loaded comment sequences keyed by post ID.
type CommentsState struct {
	Comments map[string][]models.Comment `json:"comments"`
}

// InitialComments returns an empty comments slice.
func InitialComments() CommentsState {
	return CommentsState{Comments: map[string][]models.Comment{}}
}

// ReduceComments applies an action to the comments slice. The input state is
// never modified.
func ReduceComments(state CommentsState, action Action) CommentsState {
	switch a := action.(type) {
	case SetComments:
		next := state.clone()
		next.Comments[a.PostID] = append([]models.Comment{}, a.Comments...)
		return next
	case AddComment:
		next := state.clone()
		postID := a.Comment.PostID
		next.Comments[postID] = append(next.Comments[postID], a.Comment)
		return next
	case DeleteComment:
		existing, ok := state.Comments[a.PostID]
		if !ok {
			return state
		}
		next := state.clone()
		kept := make([]models.Comment, 0, len(existing))
		for _, c := range existing {
			if c.ID != a.CommentID {
				kept = append(kept, c)
			}
		}
		next.Comments[a.PostID] = kept
		return next
	}
	return state
}

func (s CommentsState) clone() CommentsState {
	out := make(map[string][]models.Comment, len(s.Comments))
	for postID, comments := range s.Comments {
		out[postID] = append([]models.Comment{}, comments...)
	}
	return CommentsState{Comments: out}
}
