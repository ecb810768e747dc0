package content

import (
	models "campuscloud/internal/domain/models/content"
)

// AccessEvaluator is the single decision point for node visibility and
// write permission. It is a pure function over data already read from the
// repository; every call site funnels through it instead of re-deriving
// the policy.
//
// Visibility is evaluated per node with no inheritance: a private file can
// sit inside a public folder and vice versa. Filtering happens at listing
// time so the returned child set is self-consistent for the viewer.
type AccessEvaluator struct{}

// VisibleInListing decides whether one child node appears in a listing.
// Owners and enrolled members see everything in their scope; a visitor
// (viewing another identity's public profile) sees only public nodes.
func (AccessEvaluator) VisibleInListing(viewer models.Viewer, isPublic bool) bool {
	switch viewer.Relation {
	case models.RelationOwner, models.RelationMember:
		return true
	default:
		return isPublic
	}
}

// CanView decides whether a node may be fetched directly. Same rule as
// listings: unauthorized nodes are unreachable as targets, not merely
// hidden in the UI.
func (e AccessEvaluator) CanView(viewer models.Viewer, isPublic bool) bool {
	return e.VisibleInListing(viewer, isPublic)
}

// CanCreateIn decides whether the viewer may add children to a folder:
// the folder's owner always can; otherwise the folder must allow uploads
// from anyone, and in a course scope the viewer must at least be enrolled.
func (AccessEvaluator) CanCreateIn(viewer models.Viewer, parent *models.Folder) bool {
	if parent.OwnerID == viewer.ID {
		return true
	}
	if parent.AllowUploads != models.UploadAnyone {
		return false
	}
	if parent.ScopeKind == models.ScopeCourseShared {
		return viewer.IsMember() || viewer.IsOwner()
	}
	return true
}

// CanMutateFolder decides whether the viewer may rename, move, retoggle
// or delete a folder. The folder's owner always can; in a course scope,
// enrolled members can manage nodes sitting under a parent that accepts
// uploads from anyone.
func (e AccessEvaluator) CanMutateFolder(viewer models.Viewer, folder, parent *models.Folder) bool {
	if folder.OwnerID == viewer.ID {
		return true
	}
	return e.memberManaged(viewer, folder.ScopeKind, parent)
}

// CanMutateFile decides whether the viewer may rename, retoggle or delete
// a file: the uploader, the owner of the containing folder, or a course
// member when the folder accepts uploads from anyone.
func (e AccessEvaluator) CanMutateFile(viewer models.Viewer, file *models.File, folder *models.Folder) bool {
	if file.UploadedBy != nil && *file.UploadedBy == viewer.ID {
		return true
	}
	if folder.OwnerID == viewer.ID {
		return true
	}
	return e.memberManaged(viewer, folder.ScopeKind, folder)
}

func (AccessEvaluator) memberManaged(viewer models.Viewer, kind models.ScopeKind, parent *models.Folder) bool {
	if parent == nil || parent.AllowUploads != models.UploadAnyone {
		return false
	}
	if kind == models.ScopeCourseShared {
		return viewer.IsMember() || viewer.IsOwner()
	}
	return false
}
