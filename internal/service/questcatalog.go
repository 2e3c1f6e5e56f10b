package service

import (
	"fmt"
	"strings"

	"finalproject_backend/internal/model"
)

// QuestCatalog is the configured list of daily quests. It is built once at
// startup and only read afterwards, so it needs no locking.
type QuestCatalog struct {
	quests []model.QuestDefinition
	byType map[string]int
}

func NewQuestCatalog(definitions []model.QuestDefinition) (*QuestCatalog, error) {
	if len(definitions) == 0 {
		return nil, fmt.Errorf("%w: no quests configured", ErrInvalidCatalog)
	}

	c := &QuestCatalog{
		quests: make([]model.QuestDefinition, 0, len(definitions)),
		byType: make(map[string]int, len(definitions)),
	}

	for _, d := range definitions {
		d.Type = strings.TrimSpace(d.Type)
		switch {
		case d.Type == "":
			return nil, fmt.Errorf("%w: quest type is required", ErrInvalidCatalog)
		case d.Target < 1:
			return nil, fmt.Errorf("%w: quest %s target must be positive", ErrInvalidCatalog, d.Type)
		case d.Reward < 1:
			return nil, fmt.Errorf("%w: quest %s reward must be positive", ErrInvalidCatalog, d.Type)
		}
		if _, ok := c.byType[d.Type]; ok {
			return nil, fmt.Errorf("%w: duplicate quest type %s", ErrInvalidCatalog, d.Type)
		}

		c.byType[d.Type] = len(c.quests)
		c.quests = append(c.quests, d)
	}

	return c, nil
}

// List returns the quests in configuration order.
func (c *QuestCatalog) List() []model.QuestDefinition {
	out := make([]model.QuestDefinition, len(c.quests))
	copy(out, c.quests)
	return out
}

func (c *QuestCatalog) Lookup(questType string) (model.QuestDefinition, bool) {
	i, ok := c.byType[questType]
	if !ok {
		return model.QuestDefinition{}, false
	}
	return c.quests[i], true
}
