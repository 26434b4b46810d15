package handler

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/gamevault/catalog/internal/repository"
)

// fakeTx satisfies pgx.Tx for handlers that only Begin/Commit/Rollback.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeTxer struct{}

func (fakeTxer) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

// stubGameRepo is an in-memory GameRepository. The db handle is ignored.
type stubGameRepo struct {
	games  map[int64]domain.Game
	nextID int64
}

func newStubGameRepo(seed ...domain.Game) *stubGameRepo {
	r := &stubGameRepo{games: make(map[int64]domain.Game), nextID: 1}
	for _, g := range seed {
		r.games[g.ID] = g
		if g.ID >= r.nextID {
			r.nextID = g.ID + 1
		}
	}
	return r
}

func (r *stubGameRepo) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Game, error) {
	out := make([]domain.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubGameRepo) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Game, error) {
	if g, ok := r.games[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (r *stubGameRepo) FindByTitle(ctx context.Context, db repository.DBTX, title string) (*domain.Game, error) {
	for _, g := range r.games {
		if g.Title == title {
			return &g, nil
		}
	}
	return nil, nil
}

func (r *stubGameRepo) Create(ctx context.Context, db repository.DBTX, g *domain.Game) (*domain.Game, error) {
	created := *g
	created.ID = r.nextID
	r.nextID++
	r.games[created.ID] = created
	return &created, nil
}

func (r *stubGameRepo) Update(ctx context.Context, db repository.DBTX, g *domain.Game) (*domain.Game, error) {
	r.games[g.ID] = *g
	updated := *g
	return &updated, nil
}

func (r *stubGameRepo) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.games, id)
	return nil
}

// stubAchievementRepo is an in-memory AchievementRepository.
type stubAchievementRepo struct {
	achievements map[int64]domain.Achievement
	byPlayer     map[int64][]int64
	nextID       int64
}

func newStubAchievementRepo(seed ...domain.Achievement) *stubAchievementRepo {
	r := &stubAchievementRepo{achievements: make(map[int64]domain.Achievement), byPlayer: make(map[int64][]int64), nextID: 1}
	for _, a := range seed {
		r.achievements[a.ID] = a
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return r
}

func (r *stubAchievementRepo) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Achievement, error) {
	out := make([]domain.Achievement, 0, len(r.achievements))
	for _, a := range r.achievements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAchievementRepo) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Achievement, error) {
	if a, ok := r.achievements[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *stubAchievementRepo) ListByGame(ctx context.Context, db repository.DBTX, gameID int64) ([]domain.Achievement, error) {
	var out []domain.Achievement
	for _, a := range r.achievements {
		if a.GameID == gameID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAchievementRepo) ListByPlayer(ctx context.Context, db repository.DBTX, playerID int64) ([]domain.Achievement, error) {
	var out []domain.Achievement
	for _, id := range r.byPlayer[playerID] {
		if a, ok := r.achievements[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAchievementRepo) Create(ctx context.Context, db repository.DBTX, a *domain.Achievement) (*domain.Achievement, error) {
	created := *a
	created.ID = r.nextID
	r.nextID++
	r.achievements[created.ID] = created
	return &created, nil
}

func (r *stubAchievementRepo) Update(ctx context.Context, db repository.DBTX, a *domain.Achievement) (*domain.Achievement, error) {
	r.achievements[a.ID] = *a
	updated := *a
	return &updated, nil
}

func (r *stubAchievementRepo) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.achievements, id)
	return nil
}

// stubItemRepo is an in-memory ItemRepository.
type stubItemRepo struct {
	items    map[int64]domain.Item
	byPlayer map[int64][]int64
	nextID   int64
}

func newStubItemRepo(seed ...domain.Item) *stubItemRepo {
	r := &stubItemRepo{items: make(map[int64]domain.Item), byPlayer: make(map[int64][]int64), nextID: 1}
	for _, i := range seed {
		r.items[i.ID] = i
		if i.ID >= r.nextID {
			r.nextID = i.ID + 1
		}
	}
	return r
}

func (r *stubItemRepo) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubItemRepo) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Item, error) {
	if i, ok := r.items[id]; ok {
		return &i, nil
	}
	return nil, nil
}

func (r *stubItemRepo) ListByGame(ctx context.Context, db repository.DBTX, gameID int64) ([]domain.Item, error) {
	var out []domain.Item
	for _, i := range r.items {
		if i.GameID == gameID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubItemRepo) ListByPlayer(ctx context.Context, db repository.DBTX, playerID int64) ([]domain.Item, error) {
	var out []domain.Item
	for _, id := range r.byPlayer[playerID] {
		if i, ok := r.items[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *stubItemRepo) Create(ctx context.Context, db repository.DBTX, i *domain.Item) (*domain.Item, error) {
	created := *i
	created.ID = r.nextID
	r.nextID++
	r.items[created.ID] = created
	return &created, nil
}

func (r *stubItemRepo) Update(ctx context.Context, db repository.DBTX, i *domain.Item) (*domain.Item, error) {
	r.items[i.ID] = *i
	updated := *i
	return &updated, nil
}

func (r *stubItemRepo) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.items, id)
	return nil
}

// stubPlayerRepo is an in-memory PlayerRepository.
type stubPlayerRepo struct {
	players map[int64]domain.Player
	owned   map[int64][]int64 // playerID -> gameIDs
	games   *stubGameRepo
	nextID  int64
}

func newStubPlayerRepo(games *stubGameRepo, seed ...domain.Player) *stubPlayerRepo {
	r := &stubPlayerRepo{players: make(map[int64]domain.Player), owned: make(map[int64][]int64), games: games, nextID: 1}
	for _, p := range seed {
		r.players[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *stubPlayerRepo) FindAll(ctx context.Context, db repository.DBTX) ([]domain.Player, error) {
	out := make([]domain.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPlayerRepo) FindByID(ctx context.Context, db repository.DBTX, id int64) (*domain.Player, error) {
	if p, ok := r.players[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *stubPlayerRepo) Create(ctx context.Context, db repository.DBTX, p *domain.Player) (*domain.Player, error) {
	created := *p
	created.ID = r.nextID
	r.nextID++
	r.players[created.ID] = created
	return &created, nil
}

func (r *stubPlayerRepo) Update(ctx context.Context, db repository.DBTX, p *domain.Player) (*domain.Player, error) {
	r.players[p.ID] = *p
	updated := *p
	return &updated, nil
}

func (r *stubPlayerRepo) Delete(ctx context.Context, db repository.DBTX, id int64) error {
	delete(r.players, id)
	return nil
}

func (r *stubPlayerRepo) ListGames(ctx context.Context, db repository.DBTX, playerID int64) ([]domain.Game, error) {
	var out []domain.Game
	for _, gid := range r.owned[playerID] {
		if r.games == nil {
			continue
		}
		if g, ok := r.games.games[gid]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *stubPlayerRepo) GrantGame(ctx context.Context, db repository.DBTX, playerID, gameID int64) error {
	for _, gid := range r.owned[playerID] {
		if gid == gameID {
			return nil
		}
	}
	r.owned[playerID] = append(r.owned[playerID], gameID)
	return nil
}

func (r *stubPlayerRepo) GrantAchievement(ctx context.Context, db repository.DBTX, playerID, achievementID int64) error {
	return nil
}

func (r *stubPlayerRepo) GrantItem(ctx context.Context, db repository.DBTX, playerID, itemID int64) error {
	return nil
}

// stubUserRepo is an in-memory AppUserRepository.
type stubUserRepo struct {
	users  map[int64]domain.AppUser
	nextID int64
}

func newStubUserRepo(seed ...domain.AppUser) *stubUserRepo {
	r := &stubUserRepo{users: make(map[int64]domain.AppUser), nextID: 1}
	for _, u := range seed {
		r.users[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *stubUserRepo) FindByUsername(ctx context.Context, db repository.DBTX, username string) (*domain.AppUser, error) {
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByPlayer(ctx context.Context, db repository.DBTX, playerID int64) (*domain.AppUser, error) {
	for _, u := range r.users {
		if u.PlayerID != nil && *u.PlayerID == playerID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByAdmin(ctx context.Context, db repository.DBTX, adminID int64) (*domain.AppUser, error) {
	for _, u := range r.users {
		if u.AdminID != nil && *u.AdminID == adminID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Create(ctx context.Context, db repository.DBTX, u *domain.AppUser) (*domain.AppUser, error) {
	created := *u
	created.ID = r.nextID
	r.nextID++
	r.users[created.ID] = created
	return &created, nil
}

func (r *stubUserRepo) Detach(ctx context.Context, db repository.DBTX, userID int64) error {
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	u.PlayerID = nil
	u.AdminID = nil
	r.users[userID] = u
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, db repository.DBTX, userID int64) error {
	delete(r.users, userID)
	return nil
}

// stubOutboxRepo records inserted drafts.
type stubOutboxRepo struct {
	drafts []domain.OutboxDraft
}

func (r *stubOutboxRepo) Insert(ctx context.Context, db repository.DBTX, draft domain.OutboxDraft) error {
	r.drafts = append(r.drafts, draft)
	return nil
}

func (r *stubOutboxRepo) FetchUnpublished(ctx context.Context, db repository.DBTX, limit int) ([]domain.OutboxEvent, error) {
	return nil, nil
}

func (r *stubOutboxRepo) MarkPublished(ctx context.Context, db repository.DBTX, seqIDs []int64) error {
	return nil
}
