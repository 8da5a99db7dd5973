// Package policy decides which bounty operations a user may perform.
// All decisions fail closed: a missing actor, a missing token, or a
// GitHub API failure denies the operation.
package policy

import (
	"context"

	"go.uber.org/zap"

	bountyModel "github.com/gitcodegud/backend/internal/bounty/model"
	"github.com/gitcodegud/backend/internal/github"
	userModel "github.com/gitcodegud/backend/internal/user/model"
)

// Policy gates bounty operations on ownership and repository rights.
type Policy interface {
	// CanView reports whether the user may read the bounty. Active bounties
	// are public; archived ones are visible to the repo owner only.
	CanView(user *userModel.User, bounty *bountyModel.Bounty) bool

	// CanCreateForRepository reports whether the user holds admin or push
	// rights on the GitHub repository behind repoURL.
	CanCreateForRepository(ctx context.Context, user *userModel.User, repoURL string) bool

	// CanUpdate reports whether the user may edit the bounty.
	CanUpdate(user *userModel.User, bounty *bountyModel.Bounty) bool

	// CanArchive reports whether the user may archive the bounty.
	CanArchive(user *userModel.User, bounty *bountyModel.Bounty) bool

	// CanRestore reports whether the user may restore the bounty.
	CanRestore(user *userModel.User, bounty *bountyModel.Bounty) bool

	// CanSubmit reports whether the user may submit work to the bounty.
	// Owners cannot submit to their own bounties.
	CanSubmit(user *userModel.User, bounty *bountyModel.Bounty) bool

	// CanExport reports whether the user may export the bounty's data.
	CanExport(user *userModel.User, bounty *bountyModel.Bounty) bool
}

type policy struct {
	ghFactory github.ClientFactory
	logger    *zap.SugaredLogger
}

// New creates a bounty policy backed by the GitHub API for repository checks.
func New(ghFactory github.ClientFactory, logger *zap.SugaredLogger) Policy {
	return &policy{ghFactory: ghFactory, logger: logger}
}

func (p *policy) CanView(user *userModel.User, bounty *bountyModel.Bounty) bool {
	if !bounty.IsArchived() {
		return true
	}
	return p.isOwner(user, bounty)
}

func (p *policy) CanCreateForRepository(ctx context.Context, user *userModel.User, repoURL string) bool {
	if user == nil || !user.HasValidToken() {
		return false
	}

	ref := github.ParseRepoURL(repoURL)
	if ref == nil {
		return false
	}

	client := p.ghFactory.ForToken(user.OAuthProviderToken)
	repo, err := client.GetRepository(ctx, ref.FullName)
	if err != nil {
		p.logger.Warnw("repository rights check failed",
			"user_id", user.ID, "repo", ref.FullName, "error", err)
		return false
	}

	return repo.Permissions.Admin || repo.Permissions.Push
}

func (p *policy) CanUpdate(user *userModel.User, bounty *bountyModel.Bounty) bool {
	return p.isOwner(user, bounty)
}

func (p *policy) CanArchive(user *userModel.User, bounty *bountyModel.Bounty) bool {
	return p.isOwner(user, bounty)
}

func (p *policy) CanRestore(user *userModel.User, bounty *bountyModel.Bounty) bool {
	return p.isOwner(user, bounty)
}

func (p *policy) CanSubmit(user *userModel.User, bounty *bountyModel.Bounty) bool {
	if user == nil || bounty.IsArchived() || bounty.Status != bountyModel.StatusOpen {
		return false
	}
	return !p.isOwner(user, bounty)
}

func (p *policy) CanExport(user *userModel.User, bounty *bountyModel.Bounty) bool {
	return p.isOwner(user, bounty)
}

func (p *policy) isOwner(user *userModel.User, bounty *bountyModel.Bounty) bool {
	if user == nil {
		return false
	}
	ownerID := bounty.OwnerID()
	return ownerID != 0 && ownerID == user.ID
}
