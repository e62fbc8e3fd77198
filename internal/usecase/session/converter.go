package session

import "github.com/futig/legaldoc-assistant/internal/entity"

func toSessionDTO(c *Conversation) *entity.SessionDTO {
	s := c.machine.Snapshot()

	return &entity.SessionDTO{
		ID:            c.ID,
		Language:      s.Language,
		State:         s.State,
		DocumentType:  s.DocumentType,
		QuestionIndex: s.QuestionIndex,
		Fields:        s.CollectedData,
		History:       s.History,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toDocumentTypeDTO(dt *entity.DocumentType, lang entity.Language) entity.DocumentTypeDTO {
	support := dt.LocalizationSupport
	if support == nil {
		support = []string{}
	}

	return entity.DocumentTypeDTO{
		ID:                  dt.ID,
		Name:                dt.Name.In(lang),
		Description:         dt.Description.In(lang),
		LocalizationSupport: support,
		QuestionCount:       len(dt.Questions),
	}
}
