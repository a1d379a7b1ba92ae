package service

import (
	"github.com/arjunv/vidtube/internal/config"
	"github.com/arjunv/vidtube/internal/repository"
	"github.com/arjunv/vidtube/internal/token"
)

type Services struct {
	Auth  *AuthService
	User  *UserService
	Media *MediaService
}

func NewServices(repos *repository.Repositories, issuer *token.Issuer, cfg *config.Config) *Services {
	return &Services{
		Auth:  NewAuthService(repos.User, NewBcryptHasher(), issuer),
		User:  NewUserService(repos.User, repos.Media),
		Media: NewMediaService(repos.Media, cfg),
	}
}
