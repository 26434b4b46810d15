package admin

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/gamevault/catalog/internal/repository"
)

type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeTxer struct{}

func (fakeTxer) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

// memStore backs all the stub repositories for a test fixture.
type memStore struct {
	games        map[int64]domain.Game
	achievements map[int64]domain.Achievement
	items        map[int64]domain.Item
	players      map[int64]domain.Player
	admins       map[int64]domain.Admin
	users        map[int64]domain.AppUser

	playerGames        map[int64][]int64
	playerAchievements map[int64][]int64
	playerItems        map[int64][]int64

	drafts []domain.OutboxDraft
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		games:              make(map[int64]domain.Game),
		achievements:       make(map[int64]domain.Achievement),
		items:              make(map[int64]domain.Item),
		players:            make(map[int64]domain.Player),
		admins:             make(map[int64]domain.Admin),
		users:              make(map[int64]domain.AppUser),
		playerGames:        make(map[int64][]int64),
		playerAchievements: make(map[int64][]int64),
		playerItems:        make(map[int64][]int64),
		nextID:             1,
	}
}

func (s *memStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

type stubGames struct{ s *memStore }

func (r stubGames) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Game, error) {
	out := make([]domain.Game, 0, len(r.s.games))
	for _, g := range r.s.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r stubGames) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Game, error) {
	if g, ok := r.s.games[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (r stubGames) FindByTitle(ctx context.Context, db repository.DBTX, title string) (*domain.Game, error) {
	for _, g := range r.s.games {
		if g.Title == title {
			return &g, nil
		}
	}
	return nil, nil
}

func (r stubGames) Create(ctx context.Context, db repository.DBTX, g *domain.Game) (*domain.Game, error) {
	created := *g
	created.ID = r.s.id()
	r.s.games[created.ID] = created
	return &created, nil
}

func (r stubGames) Update(ctx context.Context, db repository.DBTX, g *domain.Game) (*domain.Game, error) {
	r.s.games[g.ID] = *g
	updated := *g
	return &updated, nil
}

func (r stubGames) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.s.games, id)
	return nil
}

type stubAchievements struct{ s *memStore }

func (r stubAchievements) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Achievement, error) {
	out := make([]domain.Achievement, 0, len(r.s.achievements))
	for _, a := range r.s.achievements {
		out = append(out, a)
	}
	return out, nil
}

func (r stubAchievements) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Achievement, error) {
	if a, ok := r.s.achievements[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r stubAchievements) ListByGame(ctx context.Context, db repository.DBTX, gameID int64) ([]domain.Achievement, error) {
	var out []domain.Achievement
	for _, a := range r.s.achievements {
		if a.GameID == gameID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r stubAchievements) ListByPlayer(ctx context.Context, db repository.DBTX, playerID int64) ([]domain.Achievement, error) {
	var out []domain.Achievement
	for _, id := range r.s.playerAchievements[playerID] {
		if a, ok := r.s.achievements[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r stubAchievements) Create(ctx context.Context, db repository.DBTX, a *domain.Achievement) (*domain.Achievement, error) {
	created := *a
	created.ID = r.s.id()
	r.s.achievements[created.ID] = created
	return &created, nil
}

func (r stubAchievements) Update(ctx context.Context, db repository.DBTX, a *domain.Achievement) (*domain.Achievement, error) {
	r.s.achievements[a.ID] = *a
	updated := *a
	return &updated, nil
}

func (r stubAchievements) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.s.achievements, id)
	return nil
}

type stubItems struct{ s *memStore }

func (r stubItems) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(r.s.items))
	for _, i := range r.s.items {
		out = append(out, i)
	}
	return out, nil
}

func (r stubItems) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Item, error) {
	if i, ok := r.s.items[id]; ok {
		return &i, nil
	}
	return nil, nil
}

func (r stubItems) ListByGame(ctx context.Context, db repository.DBTX, gameID int64) ([]domain.Item, error) {
	var out []domain.Item
	for _, i := range r.s.items {
		if i.GameID == gameID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r stubItems) ListByPlayer(ctx context.Context, db repository.DBTX, playerID int64) ([]domain.Item, error) {
	var out []domain.Item
	for _, id := range r.s.playerItems[playerID] {
		if i, ok := r.s.items[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r stubItems) Create(ctx context.Context, db repository.DBTX, i *domain.Item) (*domain.Item, error) {
	created := *i
	created.ID = r.s.id()
	r.s.items[created.ID] = created
	return &created, nil
}

func (r stubItems) Update(ctx context.Context, db repository.DBTX, i *domain.Item) (*domain.Item, error) {
	r.s.items[i.ID] = *i
	updated := *i
	return &updated, nil
}

func (r stubItems) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.s.items, id)
	return nil
}

type stubPlayers struct{ s *memStore }

func (r stubPlayers) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Player, error) {
	out := make([]domain.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r stubPlayers) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Player, error) {
	if p, ok := r.s.players[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r stubPlayers) Create(ctx context.Context, db repository.DBTX, p *domain.Player) (*domain.Player, error) {
	created := *p
	created.ID = r.s.id()
	r.s.players[created.ID] = created
	return &created, nil
}

func (r stubPlayers) Update(ctx context.Context, db repository.DBTX, p *domain.Player) (*domain.Player, error) {
	r.s.players[p.ID] = *p
	updated := *p
	return &updated, nil
}

func (r stubPlayers) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.s.players, id)
	return nil
}

func (r stubPlayers) ListGames(ctx context.Context, db repository.DBTX, playerID int64) ([]domain.Game, error) {
	var out []domain.Game
	for _, gid := range r.s.playerGames[playerID] {
		if g, ok := r.s.games[gid]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r stubPlayers) GrantGame(ctx context.Context, db repository.DBTX, playerID, gameID int64) error {
	for _, gid := range r.s.playerGames[playerID] {
		if gid == gameID {
			return nil
		}
	}
	r.s.playerGames[playerID] = append(r.s.playerGames[playerID], gameID)
	return nil
}

func (r stubPlayers) GrantAchievement(ctx context.Context, db repository.DBTX, playerID, achievementID int64) error {
	for _, aid := range r.s.playerAchievements[playerID] {
		if aid == achievementID {
			return nil
		}
	}
	r.s.playerAchievements[playerID] = append(r.s.playerAchievements[playerID], achievementID)
	return nil
}

func (r stubPlayers) GrantItem(ctx context.Context, db repository.DBTX, playerID, itemID int64) error {
	for _, iid := range r.s.playerItems[playerID] {
		if iid == itemID {
			return nil
		}
	}
	r.s.playerItems[playerID] = append(r.s.playerItems[playerID], itemID)
	return nil
}

type stubAdmins struct{ s *memStore }

func (r stubAdmins) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Admin, error) {
	out := make([]domain.Admin, 0, len(r.s.admins))
	for _, a := range r.s.admins {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r stubAdmins) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Admin, error) {
	if a, ok := r.s.admins[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r stubAdmins) Create(ctx context.Context, db repository.DBTX, a *domain.Admin) (*domain.Admin, error) {
	created := *a
	created.ID = r.s.id()
	r.s.admins[created.ID] = created
	return &created, nil
}

func (r stubAdmins) Update(ctx context.Context, db repository.DBTX, a *domain.Admin) (*domain.Admin, error) {
	r.s.admins[a.ID] = *a
	updated := *a
	return &updated, nil
}

func (r stubAdmins) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.s.admins, id)
	return nil
}

type stubUsers struct{ s *memStore }

func (r stubUsers) FindByUsername(ctx context.Context, db repository.DBTX, username string) (*domain.AppUser, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r stubUsers) FindByPlayer(ctx context.Context, db repository.DBTX, playerID int64) (*domain.AppUser, error) {
	for _, u := range r.s.users {
		if u.PlayerID != nil && *u.PlayerID == playerID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r stubUsers) FindByAdmin(ctx context.Context, db repository.DBTX, adminID int64) (*domain.AppUser, error) {
	for _, u := range r.s.users {
		if u.AdminID != nil && *u.AdminID == adminID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r stubUsers) Create(ctx context.Context, db repository.DBTX, u *domain.AppUser) (*domain.AppUser, error) {
	created := *u
	created.ID = r.s.id()
	r.s.users[created.ID] = created
	return &created, nil
}

func (r stubUsers) Detach(ctx context.Context, db repository.DBTX, userID int64) error {
	u, ok := r.s.users[userID]
	if !ok {
		return nil
	}
	u.PlayerID = nil
	u.AdminID = nil
	r.s.users[userID] = u
	return nil
}

func (r stubUsers) Delete(ctx context.Context, db repository.DBTX, userID int64) error {
	delete(r.s.users, userID)
	return nil
}

type stubOutbox struct{ s *memStore }

func (r stubOutbox) Insert(ctx context.Context, db repository.DBTX, draft domain.OutboxDraft) error {
	r.s.drafts = append(r.s.drafts, draft)
	return nil
}

func (r stubOutbox) FetchUnpublished(ctx context.Context, db repository.DBTX, limit int) ([]domain.OutboxEvent, error) {
	return nil, nil
}

func (r stubOutbox) MarkPublished(ctx context.Context, db repository.DBTX, seqIDs []int64) error {
	return nil
}
