package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"basegraph.app/backoffice/core/config"
	"basegraph.app/backoffice/internal/model"
)

const invitationExpiryDays = 7

type workosProvider struct {
	cfg config.WorkOSConfig
}

func NewWorkOSProvider(cfg config.WorkOSConfig) Provider {
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workosProvider{cfg: cfg}
}

func (p *workosProvider) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	first, last := splitName(params.FullName)
	u, err := usermanagement.CreateUser(ctx, usermanagement.CreateUserOpts{
		Email:         params.Email,
		Password:      params.Password,
		FirstName:     first,
		LastName:      last,
		EmailVerified: params.EmailVerified,
	})
	if err != nil {
		return nil, fmt.Errorf("creating identity user: %w", err)
	}
	return toUser(u), nil
}

func (p *workosProvider) SendInvitation(ctx context.Context, email string, role model.AccountRole) error {
	opts := usermanagement.SendInvitationOpts{
		Email:         email,
		ExpiresInDays: invitationExpiryDays,
	}
	if p.cfg.OrganizationID != "" {
		opts.OrganizationID = p.cfg.OrganizationID
		opts.RoleSlug = string(role)
	}
	if _, err := usermanagement.SendInvitation(ctx, opts); err != nil {
		return fmt.Errorf("sending invitation: %w", err)
	}
	return nil
}

func (p *workosProvider) UpdateUser(ctx context.Context, params UpdateUserParams) error {
	opts := usermanagement.UpdateUserOpts{User: params.UserID}
	if params.FullName != nil {
		opts.FirstName, opts.LastName = splitName(*params.FullName)
	}
	if params.Password != nil {
		opts.Password = *params.Password
	}
	if _, err := usermanagement.UpdateUser(ctx, opts); err != nil {
		return fmt.Errorf("updating identity user: %w", err)
	}
	return nil
}

// SetRole is a no-op without a configured organization.
func (p *workosProvider) SetRole(ctx context.Context, userID string, role model.AccountRole) error {
	if p.cfg.OrganizationID == "" {
		return nil
	}

	memberships, err := usermanagement.ListOrganizationMemberships(ctx, usermanagement.ListOrganizationMembershipsOpts{
		UserID:         userID,
		OrganizationID: p.cfg.OrganizationID,
	})
	if err != nil {
		return fmt.Errorf("listing memberships: %w", err)
	}

	if len(memberships.Data) == 0 {
		_, err = usermanagement.CreateOrganizationMembership(ctx, usermanagement.CreateOrganizationMembershipOpts{
			UserID:         userID,
			OrganizationID: p.cfg.OrganizationID,
			RoleSlug:       string(role),
		})
		if err != nil {
			return fmt.Errorf("creating membership: %w", err)
		}
		return nil
	}

	_, err = usermanagement.UpdateOrganizationMembership(ctx, memberships.Data[0].ID, usermanagement.UpdateOrganizationMembershipOpts{
		RoleSlug: string(role),
	})
	if err != nil {
		return fmt.Errorf("updating membership: %w", err)
	}
	return nil
}

func (p *workosProvider) GetUser(ctx context.Context, userID string) (*User, error) {
	u, err := usermanagement.GetUser(ctx, usermanagement.GetUserOpts{User: userID})
	if err != nil {
		return nil, fmt.Errorf("getting identity user: %w", err)
	}
	return toUser(u), nil
}

func (p *workosProvider) DeleteUser(ctx context.Context, userID string) error {
	if err := usermanagement.DeleteUser(ctx, usermanagement.DeleteUserOpts{User: userID}); err != nil {
		return fmt.Errorf("deleting identity user: %w", err)
	}
	return nil
}

func (p *workosProvider) AuthorizationURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (p *workosProvider) AuthenticateWithCode(ctx context.Context, code string) (*User, error) {
	resp, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	return toUser(resp.User), nil
}

func toUser(u usermanagement.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     joinName(u.FirstName, u.LastName, u.Email),
		LastSignInAt: parseTime(u.LastSignInAt),
	}
}

// splitName puts everything after the first word into the last name.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	first, last, _ := strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

func joinName(first, last, fallback string) string {
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return fallback
	}
	return name
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
