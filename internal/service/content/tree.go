package content

import (
	"context"
	"fmt"
	"log/slog"

	"campuscloud/internal/cache"
	"campuscloud/internal/config"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	contentRepo "campuscloud/internal/domain/repositories/content"
)

// checkNoCycle verifies that re-parenting `moving` under `newParent` keeps
// the folder graph a forest. It walks from the proposed parent upward; if
// the walk ever reaches the moving folder the move would create a cycle.
// O(depth), bounded by MaxTreeDepth so malformed data cannot loop forever.
func checkNoCycle(ctx context.Context, repo contentRepo.FolderRepository, moving, newParent *models.Folder) error {
	if newParent.ID == moving.ID {
		return &domain.CycleError{Message: "cannot move a folder into itself"}
	}

	current := newParent
	for depth := 0; depth < config.MaxTreeDepth; depth++ {
		if current.ParentID == nil {
			// Reached a root, no cycle
			return nil
		}

		parent, err := repo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return err
		}
		if parent.ID == moving.ID {
			return &domain.CycleError{Message: "cannot move a folder under its own descendant"}
		}
		current = parent
	}

	return &domain.ValidationError{Message: fmt.Sprintf("tree deeper than %d levels", config.MaxTreeDepth)}
}

// breadcrumbsFor walks parent links from the target up to (and excluding)
// the scope's system root, returning the chain ordered root-adjacent
// first. The target itself is the last crumb. Navigation display only;
// it carries no authorization weight.
func breadcrumbsFor(ctx context.Context, repo contentRepo.FolderRepository, target *models.Folder) ([]models.Breadcrumb, error) {
	if target.IsSystem {
		return []models.Breadcrumb{}, nil
	}

	var reversed []models.Breadcrumb
	current := target
	for depth := 0; depth < config.MaxTreeDepth; depth++ {
		reversed = append(reversed, models.Breadcrumb{ID: current.ID, Name: current.Name})

		if current.ParentID == nil {
			break
		}
		parent, err := repo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.IsSystem {
			break
		}
		current = parent
	}

	crumbs := make([]models.Breadcrumb, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		crumbs = append(crumbs, reversed[i])
	}
	return crumbs, nil
}

// invalidateListings drops cached listings for the given folders. Cache
// errors are logged and swallowed: the TTL bounds staleness either way.
func invalidateListings(ctx context.Context, c *cache.ListingCache, logger *slog.Logger, folderIDs ...string) {
	if c == nil {
		return
	}
	for _, id := range folderIDs {
		if err := c.InvalidateFolder(ctx, id); err != nil {
			logger.Warn("listing cache invalidation failed", "folder_id", id, "error", err)
		}
	}
}
