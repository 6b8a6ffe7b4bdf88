package store

import "blogspace/app/models"

// AuthState is the session slice. It is never persisted.
type AuthState struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *models.User `json:"user"`
}

// ReduceAuth applies an action to the auth slice.
func ReduceAuth(state AuthState, action Action) AuthState {
	switch a := action.(type) {
	case Login:
		user := a.User
		return AuthState{IsAuthenticated: true, User: &user}
	case Logout:
		return AuthState{}
	}
	return state
}

func (s AuthState) clone() AuthState {
	if s.User != nil {
		user := *s.User
		s.User = &user
	}
	return s
}
