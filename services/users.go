package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"masterboxer.com/project-social-blog/ids"
	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput holds the profile fields to change. Empty fields are
// left untouched.
type UpdateUserInput struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Password string `json:"password"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) CreateUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, invalidArgument("username, email and password are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, invalidArgument("email must be a valid address")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internal("CreateUser hash", err)
	}

	now := s.clock.Now()
	u := &models.User{
		ID:           ids.New(),
		Username:     in.Username,
		Email:        normalizeEmail(in.Email),
		Password:     hash,
		Followers:    models.NewIDSet(),
		Following:    models.NewIDSet(),
		Posts:        []string{},
		PostLikes:    models.NewIDSet(),
		CommentLikes: models.NewIDSet(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, storeError("CreateUser", err, "")
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (models.AccessToken, error) {
	u, err := s.store.Users().GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return models.AccessToken{}, unauthorized("user doesn't exist")
	}
	if err != nil {
		return models.AccessToken{}, internal("Login", err)
	}
	if err := s.hasher.Compare(u.Password, password); err != nil {
		return models.AccessToken{}, unauthorized("Invalid Password.")
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return models.AccessToken{}, internal("Login token", err)
	}
	return models.AccessToken{AccessToken: token}, nil
}

// ResolvePrincipal turns a verified token subject into a principal. A
// missing or deleted user means the session is stale.
func (s *Service) ResolvePrincipal(ctx context.Context, userID string) (*models.Principal, error) {
	u, err := s.store.Users().Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && u.IsDeleted) {
		return nil, unauthorized("Unauthorized")
	}
	if err != nil {
		return nil, internal("ResolvePrincipal", err)
	}
	return &models.Principal{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}, nil
}

// GetUser returns the public profile of a live user.
func (s *Service) GetUser(ctx context.Context, id string) (models.UserSummary, error) {
	if id = ids.Canonical(id); id == "" {
		return models.UserSummary{}, invalidArgument("invalid provided user id")
	}
	u, err := s.store.Users().Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && u.IsDeleted) {
		return models.UserSummary{}, notFound("User doesn't exist.")
	}
	if err != nil {
		return models.UserSummary{}, internal("GetUser", err)
	}
	return u.Summary(), nil
}

// UpdateUser changes the caller's profile. A password change returns a
// fresh access token instead of the success flag.
func (s *Service) UpdateUser(ctx context.Context, p *models.Principal, in UpdateUserInput) (models.UpdateResult, error) {
	if err := requireCaller(p); err != nil {
		return models.UpdateResult{}, err
	}
	if in.Username == "" && in.Avatar == "" && in.Password == "" {
		return models.UpdateResult{}, invalidArgument("at least one key to change")
	}

	var hash string
	if in.Password != "" {
		var err error
		if hash, err = s.hasher.Hash(in.Password); err != nil {
			return models.UpdateResult{}, internal("UpdateUser hash", err)
		}
	}

	var email string
	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		u, err := tx.Users().GetForUpdate(ctx, p.ID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && u.IsDeleted) {
			return notFound("User doesn't exist.")
		}
		if err != nil {
			return err
		}

		if in.Username != "" {
			u.Username = in.Username
		}
		if in.Avatar != "" {
			u.Avatar = in.Avatar
		}
		if hash != "" {
			u.Password = hash
		}
		u.UpdatedAt = s.clock.Now()
		email = u.Email
		return tx.Users().UpdateProfile(ctx, u)
	})
	if err != nil {
		return models.UpdateResult{}, internal("UpdateUser", err)
	}

	if hash == "" {
		return models.UpdateResult{Success: true}, nil
	}
	token, err := s.tokens.Issue(p.ID, email)
	if err != nil {
		return models.UpdateResult{}, internal("UpdateUser token", err)
	}
	return models.UpdateResult{AccessToken: token}, nil
}

// DeleteUser soft-deletes the caller and every post they authored. Their
// comments and likes stay in place.
func (s *Service) DeleteUser(ctx context.Context, p *models.Principal) error {
	if err := requireCaller(p); err != nil {
		return err
	}

	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		u, err := tx.Users().GetForUpdate(ctx, p.ID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && u.IsDeleted) {
			return notFound("User doesn't exist.")
		}
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if err := tx.Users().SoftDelete(ctx, p.ID, now); err != nil {
			return err
		}
		return tx.Posts().SoftDeleteByPoster(ctx, p.ID, now)
	})
	if err != nil {
		return internal("DeleteUser", err)
	}
	return nil
}
