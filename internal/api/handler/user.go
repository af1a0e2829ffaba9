package handler

import (
	"net/http"

	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/internal/usecases/authenticating"
)

// CreateUser atende /v1/register e a criação pelo master
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user domain.User
		if err := decodeBody(r, &user); err != nil {
			invalidBody(w, nil)
			return
		}

		created, err := service.CreateUser(r.Context(), &user)
		if err != nil {
			authFailure(w, r, "create-user", err)
			return
		}

		respondCreated(w, created)
	}
}

func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser(r.Context())
		if users == nil {
			users = []*domain.User{}
		}
		respond(w, users, err)
	}
}

func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		var request domain.UpdateUserRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}
		request.ID = id

		if err := service.UpdateUser(r.Context(), &request); err != nil {
			authFailure(w, r, "update-user", err)
			return
		}

		respond(w, map[string]int{"id": id}, nil)
	}
}
