package transfer

import (
	"github.com/gamevault/catalog/internal/domain"
	"github.com/gamevault/catalog/internal/hateoas"
)

// GameToDTO maps a game row to its wire form. Passing nil links yields a
// bare representation, used by the name-scoped lookup routes.
func GameToDTO(g *domain.Game, links []hateoas.Link) GameDTO {
	return GameDTO{
		ID:          g.ID,
		Title:       g.Title,
		Genre:       g.Genre,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
		Links:       links,
	}
}

func AchievementToDTO(a *domain.Achievement, links []hateoas.Link) AchievementDTO {
	return AchievementDTO{
		ID:          a.ID,
		GameID:      a.GameID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Links:       links,
	}
}

func ItemToDTO(i *domain.Item, links []hateoas.Link) ItemDTO {
	return ItemDTO{
		ID:         i.ID,
		GameID:     i.GameID,
		Name:       i.Name,
		Attributes: i.Attributes,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
		Links:      links,
	}
}

func PlayerToDTO(p *domain.Player, links []hateoas.Link) PlayerDTO {
	return PlayerDTO{
		ID:         p.ID,
		Nickname:   p.Nickname,
		Email:      p.Email,
		Level:      p.Level,
		Experience: p.Experience,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Links:      links,
	}
}

func AdminToDTO(a *domain.Admin, links []hateoas.Link) AdminDTO {
	return AdminDTO{
		ID:         a.ID,
		Nickname:   a.Nickname,
		Email:      a.Email,
		Level:      a.Level,
		Experience: a.Experience,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		Links:      links,
	}
}
