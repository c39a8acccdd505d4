package repository

import (
	"context"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
)

// Reserved keys of a game log record; every other key is a stat category.
const (
	keyRank     = "rank"
	keyDate     = "gameDateString"
	keyReason   = "reason"
	keyPlayerID = "playerBbrefId"
)

type leagueDoc struct {
	LeagueName string    `json:"leagueName" validate:"required"`
	StartDate  string    `json:"startDate" validate:"required,datetime=2006-01-02"`
	Teams      []teamDoc `json:"teams" validate:"required,min=1,dive"`
}

type teamDoc struct {
	ID           string               `json:"id" validate:"required"`
	Name         string               `json:"name" validate:"required"`
	Owner        string               `json:"owner,omitempty"`
	Players      map[string]playerDoc `json:"players" validate:"required,dive"`
	Transactions []transactionDoc     `json:"transactions,omitempty" validate:"dive"`
}

type playerDoc struct {
	ID              string           `json:"id,omitempty" validate:"required_without=BbrefID"`
	BbrefID         string           `json:"bbrefId,omitempty" validate:"required_without=ID"`
	Name            string           `json:"name" validate:"required"`
	GameLog         []map[string]any `json:"gameLog,omitempty"`
	InactiveGameLog []map[string]any `json:"inactiveGameLog,omitempty"`
}

type transactionDoc struct {
	Position string    `json:"position" validate:"required"`
	Date     string    `json:"transactionDateString" validate:"required,datetime=2006-01-02"`
	Player   playerDoc `json:"player"`
}

// FileStore is a Store backed by a single JSON file.
type FileStore struct {
	path      string
	log       logger.Logger
	validate  *validator.Validate
	positions map[model.Position]struct{}
}

var _ Store = (*FileStore)(nil)

// New returns a FileStore reading and writing path.
func New(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:     path,
		log:      logger.Nop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) (*model.League, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read %s", s.path), ErrLoadLeague)
	}
	return s.Decode(ctx, raw)
}

// Decode parses a league document held in memory.
func (s *FileStore) Decode(ctx context.Context, raw []byte) (*model.League, error) {
	var doc leagueDoc
	if err := sonic.ConfigStd.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode league"), ErrLoadLeague)
	}
	if err := s.validate.StructCtx(ctx, doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "validate league"), ErrInvalidLeague)
	}

	start, err := model.ParseDate(doc.StartDate)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "start date"), ErrInvalidLeague)
	}
	league := &model.League{Name: doc.LeagueName, StartDate: start, Teams: make([]model.Team, 0, len(doc.Teams))}

	ids := make(map[string]struct{}, len(doc.Teams))
	for _, td := range doc.Teams {
		if _, dup := ids[td.ID]; dup {
			return nil, errors.Wrapf(ErrInvalidLeague, "duplicate team id %q", td.ID)
		}
		ids[td.ID] = struct{}{}
		team, err := s.team(ctx, td)
		if err != nil {
			return nil, errors.Wrapf(err, "team %s", td.ID)
		}
		league.Teams = append(league.Teams, team)
	}
	return league, nil
}

func (s *FileStore) team(ctx context.Context, td teamDoc) (model.Team, error) {
	team := model.Team{
		ID:      td.ID,
		Name:    td.Name,
		Owner:   td.Owner,
		Players: make(map[model.Position]model.Player, len(td.Players)),
	}
	for name, pd := range td.Players {
		pos, err := s.position(name)
		if err != nil {
			return model.Team{}, err
		}
		p, err := s.player(ctx, pd)
		if err != nil {
			return model.Team{}, errors.Wrapf(err, "position %s", name)
		}
		team.Players[pos] = p
	}
	for i, txd := range td.Transactions {
		pos, err := s.position(txd.Position)
		if err != nil {
			return model.Team{}, errors.Wrapf(err, "transaction %d", i)
		}
		d, err := model.ParseDate(txd.Date)
		if err != nil {
			return model.Team{}, errors.Mark(errors.Wrapf(err, "transaction %d", i), ErrInvalidLeague)
		}
		p, err := s.player(ctx, txd.Player)
		if err != nil {
			return model.Team{}, errors.Wrapf(err, "transaction %d", i)
		}
		team.AddTransaction(model.Transaction{Position: pos, Date: d, Player: p})
	}
	return team, nil
}

func (s *FileStore) position(name string) (model.Position, error) {
	pos := model.Position(name)
	if s.positions != nil {
		if _, ok := s.positions[pos]; ok {
			return pos, nil
		}
	} else if pos.IsKnown() {
		return pos, nil
	}
	return "", errors.Wrapf(ErrInvalidLeague, "unknown position %q", name)
}

func (s *FileStore) player(ctx context.Context, pd playerDoc) (model.Player, error) {
	p := model.Player{ID: pd.ID, Name: pd.Name}
	if p.ID == "" {
		p.ID = pd.BbrefID
	}

	p.GameLog = make([]model.GameLogEntry, 0, len(pd.GameLog))
	for _, rec := range pd.GameLog {
		rank, day, err := rankAndDate(rec)
		if err != nil {
			return model.Player{}, errors.Wrapf(err, "player %s game log", p.ID)
		}
		e := model.GameLogEntry{Rank: rank, Date: day, Stats: make(map[string]float64, len(rec))}
		for k, v := range rec {
			switch k {
			case keyRank, keyDate, keyPlayerID:
				continue
			}
			f, ok := number(v)
			if !ok {
				s.log.Debug(ctx, "skipping non-numeric stat",
					logger.String("player", p.ID),
					logger.Int("rank", rank),
					logger.String("category", k),
				)
				continue
			}
			e.Stats[k] = f
		}
		p.GameLog = append(p.GameLog, e)
	}

	p.InactiveGameLog = make([]model.InactiveGameLogEntry, 0, len(pd.InactiveGameLog))
	for _, rec := range pd.InactiveGameLog {
		rank, day, err := rankAndDate(rec)
		if err != nil {
			return model.Player{}, errors.Wrapf(err, "player %s inactive game log", p.ID)
		}
		reason, _ := rec[keyReason].(string)
		p.InactiveGameLog = append(p.InactiveGameLog, model.InactiveGameLogEntry{Rank: rank, Date: day, Reason: reason})
	}

	sort.SliceStable(p.GameLog, func(i, j int) bool { return p.GameLog[i].Rank < p.GameLog[j].Rank })
	sort.SliceStable(p.InactiveGameLog, func(i, j int) bool { return p.InactiveGameLog[i].Rank < p.InactiveGameLog[j].Rank })
	return p, nil
}

func rankAndDate(rec map[string]any) (int, time.Time, error) {
	f, ok := number(rec[keyRank])
	if !ok || f < 1 || f != float64(int(f)) {
		return 0, time.Time{}, errors.Wrapf(ErrInvalidLeague, "bad rank %v", rec[keyRank])
	}
	ds, _ := rec[keyDate].(string)
	d, err := model.ParseDate(ds)
	if err != nil {
		return 0, time.Time{}, errors.Mark(errors.Wrapf(err, "rank %d", int(f)), ErrInvalidLeague)
	}
	return int(f), d, nil
}

// number coerces a JSON value to a finite float64. Numeric strings are
// accepted; NaN and infinities are not.
func number(v any) (float64, bool) {
	f, ok := coerce(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerce(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Save implements Store. Ranks and stats are written as numbers.
func (s *FileStore) Save(ctx context.Context, league *model.League) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if league == nil {
		return errors.Wrap(ErrSaveLeague, "nil league")
	}
	raw, err := Encode(league)
	if err != nil {
		return errors.Mark(err, ErrSaveLeague)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return errors.Mark(errors.Wrapf(err, "write %s", s.path), ErrSaveLeague)
	}
	s.log.Info(ctx, "league saved",
		logger.String("path", s.path),
		logger.Int("teams", len(league.Teams)),
	)
	return nil
}

// Encode renders a league in the file format Load reads.
func Encode(league *model.League) ([]byte, error) {
	doc := leagueDoc{
		LeagueName: league.Name,
		StartDate:  model.FormatDate(league.StartDate),
		Teams:      make([]teamDoc, 0, len(league.Teams)),
	}
	for _, t := range league.Teams {
		td := teamDoc{ID: t.ID, Name: t.Name, Owner: t.Owner, Players: make(map[string]playerDoc, len(t.Players))}
		for pos, p := range t.Players {
			td.Players[string(pos)] = encodePlayer(p)
		}
		for _, tx := range t.Transactions {
			td.Transactions = append(td.Transactions, transactionDoc{
				Position: string(tx.Position),
				Date:     model.FormatDate(tx.Date),
				Player:   encodePlayer(tx.Player),
			})
		}
		doc.Teams = append(doc.Teams, td)
	}
	raw, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode league")
	}
	return raw, nil
}

func encodePlayer(p model.Player) playerDoc {
	pd := playerDoc{ID: p.ID, Name: p.Name}
	for _, e := range p.GameLog {
		rec := make(map[string]any, len(e.Stats)+2)
		for k, v := range e.Stats {
			rec[k] = v
		}
		rec[keyRank] = e.Rank
		rec[keyDate] = model.FormatDate(e.Date)
		pd.GameLog = append(pd.GameLog, rec)
	}
	for _, e := range p.InactiveGameLog {
		rec := map[string]any{keyRank: e.Rank, keyDate: model.FormatDate(e.Date)}
		if e.Reason != "" {
			rec[keyReason] = e.Reason
		}
		pd.InactiveGameLog = append(pd.InactiveGameLog, rec)
	}
	return pd
}
