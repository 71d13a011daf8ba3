package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/busitron/workhub/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrMemberNotFound is returned when a member reference is absent from a project.
	ErrMemberNotFound = errors.New("project member not found")
	// ErrNoNewMembers is returned when every requested member is already present.
	ErrNoNewMembers = errors.New("all selected members are already in the project")
	// ErrMilestoneNotFound is returned when a milestone id does not resolve within its parent.
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	Save(ctx context.Context, p *model.Project) error
	FindAll(ctx context.Context) ([]model.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*model.Project, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error
	RemoveMember(ctx context.Context, projectID uuid.UUID, userID uuid.UUID) error

	AddMilestone(ctx context.Context, projectID uuid.UUID, m model.Milestone) (*model.Project, error)
	UpdateMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID, apply func(*model.Milestone)) (*model.Milestone, error)
	DeleteMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID) (*model.Project, error)

	MutateAttachments(ctx context.Context, projectID uuid.UUID, mutate func([]string) []string) ([]string, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) Save(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *projectRepo) FindAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	return projects, r.db.WithContext(ctx).Order("created_at ASC").Find(&projects).Error
}

func (r *projectRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).Preload("Members").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&p).Updates(fields).Error; err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// newMembers diffs the requested ids against the rows already present and
// returns only the join rows to insert. Ids are compared case-insensitively
// by their string form; duplicates inside the request collapse to one row.
func newMembers(projectID uuid.UUID, existing []model.ProjectMember, userIDs []uuid.UUID) []model.ProjectMember {
	present := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		present[strings.ToLower(m.UserID.String())] = struct{}{}
	}

	toAdd := make([]model.ProjectMember, 0, len(userIDs))
	for _, id := range userIDs {
		if _, ok := present[strings.ToLower(id.String())]; ok {
			continue
		}
		present[strings.ToLower(id.String())] = struct{}{}
		toAdd = append(toAdd, model.ProjectMember{ProjectID: projectID, UserID: id})
	}
	return toAdd
}

// AddMembers appends only the member ids not already present, holding the
// project row lock so the diff and the insert observe the same state. Every
// id already present is dropped; if nothing remains, ErrNoNewMembers.
func (r *projectRepo) AddMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", projectID).First(&p).Error; err != nil {
			return err
		}

		var existing []model.ProjectMember
		if err := tx.Where("project_id = ?", projectID).Find(&existing).Error; err != nil {
			return fmt.Errorf("query members: %w", err)
		}

		toAdd := newMembers(projectID, existing, userIDs)
		if len(toAdd) == 0 {
			return ErrNoNewMembers
		}

		if err := tx.Create(&toAdd).Error; err != nil {
			return fmt.Errorf("insert members: %w", err)
		}
		return nil
	})
}

func (r *projectRepo) RemoveMember(ctx context.Context, projectID uuid.UUID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", projectID).First(&p).Error; err != nil {
			return err
		}

		res := tx.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&model.ProjectMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMemberNotFound
		}
		return nil
	})
}

func (r *projectRepo) AddMilestone(ctx context.Context, projectID uuid.UUID, m model.Milestone) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", projectID).First(&p).Error; err != nil {
			return err
		}

		milestones := append(p.Milestones.Data(), m)
		p.Milestones = datatypes.NewJSONType(milestones)
		if err := tx.Model(&p).Update("milestones", p.Milestones).Error; err != nil {
			return fmt.Errorf("append milestone: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// milestoneIndex locates a milestone by id inside its parent's embedded
// list; -1 when absent.
func milestoneIndex(milestones []model.Milestone, id uuid.UUID) int {
	for i := range milestones {
		if milestones[i].ID == id {
			return i
		}
	}
	return -1
}

// withoutMilestone filters one milestone out of the list, preserving order.
// An empty list and an unmatched id both yield ErrMilestoneNotFound.
func withoutMilestone(milestones []model.Milestone, id uuid.UUID) ([]model.Milestone, error) {
	if len(milestones) == 0 {
		return nil, ErrMilestoneNotFound
	}

	kept := make([]model.Milestone, 0, len(milestones))
	for _, m := range milestones {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(milestones) {
		return nil, ErrMilestoneNotFound
	}
	return kept, nil
}

func (r *projectRepo) UpdateMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID, apply func(*model.Milestone)) (*model.Milestone, error) {
	var updated *model.Milestone
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", projectID).First(&p).Error; err != nil {
			return err
		}

		milestones := p.Milestones.Data()
		idx := milestoneIndex(milestones, milestoneID)
		if idx < 0 {
			return ErrMilestoneNotFound
		}

		apply(&milestones[idx])
		updated = &milestones[idx]

		p.Milestones = datatypes.NewJSONType(milestones)
		if err := tx.Model(&p).Update("milestones", p.Milestones).Error; err != nil {
			return fmt.Errorf("update milestone: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *projectRepo) DeleteMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", projectID).First(&p).Error; err != nil {
			return err
		}

		kept, err := withoutMilestone(p.Milestones.Data(), milestoneID)
		if err != nil {
			return err
		}

		p.Milestones = datatypes.NewJSONType(kept)
		if err := tx.Model(&p).Update("milestones", p.Milestones).Error; err != nil {
			return fmt.Errorf("delete milestone: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MutateAttachments applies one mutation to the attachment URL list under the
// project row lock and returns the resulting list.
func (r *projectRepo) MutateAttachments(ctx context.Context, projectID uuid.UUID, mutate func([]string) []string) ([]string, error) {
	var result []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", projectID).First(&p).Error; err != nil {
			return err
		}

		result = mutate(p.Attachments.Data())
		if result == nil {
			result = []string{}
		}

		p.Attachments = datatypes.NewJSONType(result)
		if err := tx.Model(&p).Update("attachments", p.Attachments).Error; err != nil {
			return fmt.Errorf("update attachments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
