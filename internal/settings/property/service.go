package property

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

type Service interface {
	Create(ctx context.Context, property *Property) error
	List(ctx context.Context, includeDeleted bool) ([]Property, error)
	Get(ctx context.Context, propertyID string) (*Property, error)
	Update(ctx context.Context, propertyID string, input UpdateInput) (*Property, error)
	Delete(ctx context.Context, propertyID string) error
	GetDefault(ctx context.Context) (*Property, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create stores a new property. The first property in the system becomes the
// default whether or not the caller asked for it.
func (s *service) Create(ctx context.Context, property *Property) error {
	property.ID = uuid.NewString()
	property.IsActive = true

	if strings.TrimSpace(property.Name) == "" {
		return financeErrors.NewValidationError("Property name is required and cannot be empty")
	}
	if err := s.checkNameUnique(ctx, property.Name, ""); err != nil {
		return err
	}

	existing, err := s.repo.findAll(ctx, false)
	if err != nil {
		return err
	}

	// The row is inserted without the flag; only setDefault's transaction
	// moves it, so two defaults can never be committed.
	requestedDefault := property.IsDefault
	property.IsDefault = len(existing) == 0

	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now
	if err := s.repo.save(ctx, *property); err != nil {
		return err
	}

	// a requested default displaces the previous one
	if requestedDefault && len(existing) > 0 {
		if err := s.repo.setDefault(ctx, property.ID); err != nil {
			return err
		}
		property.IsDefault = true
	}
	return nil
}

func (s *service) List(ctx context.Context, includeDeleted bool) ([]Property, error) {
	properties, err := s.repo.findAll(ctx, includeDeleted)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		return []Property{}, nil
	}
	return properties, nil
}

func (s *service) Get(ctx context.Context, propertyID string) (*Property, error) {
	property, err := s.repo.findByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, financeErrors.ErrPropertyNotFound
	}
	return property, nil
}

func (s *service) Update(ctx context.Context, propertyID string, input UpdateInput) (*Property, error) {
	property, err := s.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, financeErrors.NewValidationError("Property name is required and cannot be empty")
		}
		if err := s.checkNameUnique(ctx, *input.Name, propertyID); err != nil {
			return nil, err
		}
	}

	if input.IsDefault != nil {
		if *input.IsDefault {
			if err := s.repo.setDefault(ctx, propertyID); err != nil {
				return nil, err
			}
		} else if property.IsDefault {
			// the default flag moves to another property; it never just vanishes
			other, err := s.anotherProperty(ctx, propertyID)
			if err != nil {
				return nil, err
			}
			if other == nil {
				return nil, financeErrors.NewConflictError("Cannot unset default property. At least one property must be default.")
			}
			if err := s.repo.setDefault(ctx, other.ID); err != nil {
				return nil, err
			}
		}
		// handled by setDefault above
		input.IsDefault = nil
	}

	if input.Name == nil && input.IsActive == nil {
		return s.Get(ctx, propertyID)
	}

	updated, err := s.repo.update(ctx, propertyID, input)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, financeErrors.ErrPropertyNotFound
	}
	return updated, nil
}

// Delete soft-deletes a property. Deleting the default promotes another
// property first; deleting the last property is refused.
func (s *service) Delete(ctx context.Context, propertyID string) error {
	property, err := s.Get(ctx, propertyID)
	if err != nil {
		return err
	}

	if property.IsDefault {
		other, err := s.anotherProperty(ctx, propertyID)
		if err != nil {
			return err
		}
		if other == nil {
			return financeErrors.NewConflictError("Cannot delete the only property. At least one property must exist.")
		}
		if err := s.repo.setDefault(ctx, other.ID); err != nil {
			return err
		}
	}

	return s.repo.softDelete(ctx, propertyID)
}

func (s *service) GetDefault(ctx context.Context) (*Property, error) {
	property, err := s.repo.getDefault(ctx)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, financeErrors.ErrPropertyNotFound
	}
	return property, nil
}

func (s *service) checkNameUnique(ctx context.Context, name, excludeID string) error {
	existing, err := s.repo.findByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return financeErrors.NewDuplicateNameError("Property", name)
	}
	return nil
}

func (s *service) anotherProperty(ctx context.Context, excludeID string) (*Property, error) {
	properties, err := s.repo.findAll(ctx, false)
	if err != nil {
		return nil, err
	}
	for i := range properties {
		if properties[i].ID != excludeID {
			return &properties[i], nil
		}
	}
	return nil, nil
}
