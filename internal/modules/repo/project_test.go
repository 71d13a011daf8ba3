package repo

import (
	"testing"

	"github.com/busitron/workhub/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func members(projectID uuid.UUID, userIDs ...uuid.UUID) []model.ProjectMember {
	rows := make([]model.ProjectMember, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, model.ProjectMember{ProjectID: projectID, UserID: id})
	}
	return rows
}

func TestNewMembers(t *testing.T) {
	projectID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	t.Run("drops ids already present", func(t *testing.T) {
		toAdd := newMembers(projectID, members(projectID, alice), []uuid.UUID{alice, bob})

		assert.Len(t, toAdd, 1)
		assert.Equal(t, bob, toAdd[0].UserID)
		assert.Equal(t, projectID, toAdd[0].ProjectID)
	})

	t.Run("collapses duplicates inside the request", func(t *testing.T) {
		toAdd := newMembers(projectID, nil, []uuid.UUID{bob, bob, carol})

		assert.Len(t, toAdd, 2)
		assert.Equal(t, bob, toAdd[0].UserID)
		assert.Equal(t, carol, toAdd[1].UserID)
	})

	t.Run("wholly duplicate selection yields nothing", func(t *testing.T) {
		toAdd := newMembers(projectID, members(projectID, alice, bob), []uuid.UUID{bob, alice})

		assert.Empty(t, toAdd)
	})

	t.Run("preserves request order", func(t *testing.T) {
		toAdd := newMembers(projectID, nil, []uuid.UUID{carol, alice, bob})

		assert.Equal(t, []uuid.UUID{carol, alice, bob},
			[]uuid.UUID{toAdd[0].UserID, toAdd[1].UserID, toAdd[2].UserID})
	})
}

func TestMilestoneIndex(t *testing.T) {
	first := model.Milestone{ID: uuid.New(), Title: "Design freeze"}
	second := model.Milestone{ID: uuid.New(), Title: "Beta"}
	milestones := []model.Milestone{first, second}

	assert.Equal(t, 0, milestoneIndex(milestones, first.ID))
	assert.Equal(t, 1, milestoneIndex(milestones, second.ID))
	assert.Equal(t, -1, milestoneIndex(milestones, uuid.New()))
	assert.Equal(t, -1, milestoneIndex(nil, first.ID))
}

func TestWithoutMilestone(t *testing.T) {
	first := model.Milestone{ID: uuid.New(), Title: "Design freeze"}
	second := model.Milestone{ID: uuid.New(), Title: "Beta"}
	third := model.Milestone{ID: uuid.New(), Title: "Launch"}

	t.Run("removes the matched milestone and keeps order", func(t *testing.T) {
		kept, err := withoutMilestone([]model.Milestone{first, second, third}, second.ID)

		assert.NoError(t, err)
		assert.Equal(t, []model.Milestone{first, third}, kept)
	})

	t.Run("empty list is not found", func(t *testing.T) {
		_, err := withoutMilestone([]model.Milestone{}, first.ID)

		assert.ErrorIs(t, err, ErrMilestoneNotFound)
	})

	t.Run("unmatched id is not found", func(t *testing.T) {
		_, err := withoutMilestone([]model.Milestone{first, second}, uuid.New())

		assert.ErrorIs(t, err, ErrMilestoneNotFound)
	})
}
