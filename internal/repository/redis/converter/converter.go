package converter

import "github.com/DRSN-tech/shop-console/internal/domain"

// SessionConverter преобразует сессию между domain и моделью Redis.
type SessionConverter interface {
	ToRedisModel(entity *domain.Session) *SessionRedisModel
	ToEntity(model *SessionRedisModel) *domain.Session
}

type SessionConverterImpl struct{}

func NewSessionConverter() *SessionConverterImpl {
	return &SessionConverterImpl{}
}

func (c *SessionConverterImpl) ToRedisModel(entity *domain.Session) *SessionRedisModel {
	if entity == nil {
		return nil
	}

	return &SessionRedisModel{
		ID:         entity.ID,
		Token:      entity.Token,
		LoginEmail: entity.LoginEmail,
		Form: FormRedisModel{
			EditingID:   copyID(entity.Form.EditingID),
			Name:        entity.Form.Name,
			Price:       entity.Form.Price,
			Description: entity.Form.Description,
			ImageURL:    entity.Form.ImageURL,

			ImageReachable: entity.Form.ImageReachable,
		},
		CreatedAt: entity.CreatedAt,
	}
}

func (c *SessionConverterImpl) ToEntity(model *SessionRedisModel) *domain.Session {
	if model == nil {
		return nil
	}

	return &domain.Session{
		ID:         model.ID,
		Token:      model.Token,
		LoginEmail: model.LoginEmail,
		Form: domain.Form{
			EditingID:   copyID(model.Form.EditingID),
			Name:        model.Form.Name,
			Price:       model.Form.Price,
			Description: model.Form.Description,
			ImageURL:    model.Form.ImageURL,

			ImageReachable: model.Form.ImageReachable,
		},
		CreatedAt: model.CreatedAt,
	}
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
