package property

import (
	"context"
	"time"
)

type MockRepository struct {
	Properties []Property

	SaveErr       error
	SetDefaultErr error
}

func (m *MockRepository) save(_ context.Context, property Property) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Properties = append(m.Properties, property)
	return nil
}

func (m *MockRepository) findAll(_ context.Context, includeDeleted bool) ([]Property, error) {
	var properties []Property
	for _, property := range m.Properties {
		if !includeDeleted && property.DeletedAt != nil {
			continue
		}
		properties = append(properties, property)
	}
	return properties, nil
}

func (m *MockRepository) findByID(_ context.Context, propertyID string) (*Property, error) {
	for _, property := range m.Properties {
		if property.ID == propertyID && property.DeletedAt == nil {
			found := property
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) findByName(_ context.Context, name, excludeID string) (*Property, error) {
	for _, property := range m.Properties {
		if property.Name == name && property.ID != excludeID && property.DeletedAt == nil {
			found := property
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) update(_ context.Context, propertyID string, input UpdateInput) (*Property, error) {
	for i := range m.Properties {
		property := &m.Properties[i]
		if property.ID != propertyID || property.DeletedAt != nil {
			continue
		}
		if input.Name != nil {
			property.Name = *input.Name
		}
		if input.IsActive != nil {
			property.IsActive = *input.IsActive
		}
		if input.IsDefault != nil {
			property.IsDefault = *input.IsDefault
		}
		property.UpdatedAt = time.Now().UTC()
		found := *property
		return &found, nil
	}
	return nil, nil
}

func (m *MockRepository) setDefault(_ context.Context, propertyID string) error {
	if m.SetDefaultErr != nil {
		return m.SetDefaultErr
	}
	for i := range m.Properties {
		if m.Properties[i].DeletedAt != nil {
			continue
		}
		m.Properties[i].IsDefault = m.Properties[i].ID == propertyID
	}
	return nil
}

func (m *MockRepository) softDelete(_ context.Context, propertyID string) error {
	for i := range m.Properties {
		if m.Properties[i].ID == propertyID && m.Properties[i].DeletedAt == nil {
			now := time.Now().UTC()
			m.Properties[i].DeletedAt = &now
			m.Properties[i].IsDefault = false
			return nil
		}
	}
	return nil
}

func (m *MockRepository) getDefault(_ context.Context) (*Property, error) {
	for _, property := range m.Properties {
		if property.IsDefault && property.DeletedAt == nil {
			found := property
			return &found, nil
		}
	}
	return nil, nil
}
