// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's session
//   - POST /daily/guess       → guess in today's session
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same pool and password for a UTC date (see internal/daily).
// A player finishes at most once per date; the result is persisted when
// the session ends, won or lost.
//
// The session store may evict a daily session at any time. Each player's
// guesses are kept here as well, and an evicted session is rebuilt by
// replaying them, so leaving and coming back never refills the attempts.
// Daily session IDs carry dailyIDPrefix and are hidden from /game routes.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termhack/internal/daily"
	"github.com/robalobadob/termhack/internal/game"
	"github.com/robalobadob/termhack/internal/store"
)

const dailyIDPrefix = "daily_"

func isDailyID(id string) bool { return strings.HasPrefix(id, dailyIDPrefix) }

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	sessions map[string]*dailySession // keyed by userID|date, today only
	mu       sync.Mutex               // guards sessions
}

// dailySession links a player and date to a stored game session and
// holds what is needed to rebuild it.
type dailySession struct {
	mu sync.Mutex // serializes play on this session; guards the fields below

	GameID    string
	UserID    string
	Date      string
	Pool      []game.Word
	SecretIdx int
	Attempts  int
	Guesses   []game.Word
	Start     time.Time
	Finished  bool
}

func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// puzzle derives today's date key, candidate pool and password index.
func (d *dailyServer) puzzle(now time.Time) (date string, pool []game.Word, secretIdx int) {
	cfg := d.srv.cfg.Daily
	dict := d.srv.dict

	var lengths []int
	for _, n := range dict.Lengths() {
		if len(dict.OfLength(n)) >= 2 {
			lengths = append(lengths, n)
		}
	}
	if len(lengths) == 0 {
		lengths = dict.Lengths()
	}
	n := daily.Length(now, cfg.Salt, lengths)
	for _, w := range daily.Pool(now, cfg.Salt, dict.OfLength(n), cfg.PoolSize) {
		pool = append(pool, game.Word(w))
	}
	return daily.DateKey(now), pool, daily.SecretIndex(now, cfg.Salt, len(pool))
}

type dailyNewRes struct {
	GameID     string   `json:"gameId,omitempty"`
	Date       string   `json:"date"`
	Played     bool     `json:"played"`
	WordLength int      `json:"wordLength,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Attempts   int      `json:"attemptsRemaining,omitempty"`
}

// handleNew creates or resumes today's session.
//   - If the player already has a stored result for today → Played=true.
//   - Otherwise reuse the player's session (rebuilt if evicted) or start a new one.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, _ := d.srv.ownerID(w, r)
	now := d.srv.now()
	date, pool, idx := d.puzzle(now)

	played, err := d.store.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "server_error", nil)
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}
	if len(pool) == 0 {
		writeError(w, http.StatusServiceUnavailable, "no_words", nil)
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	d.prune(date)
	ds, ok := d.sessions[key]
	if !ok {
		ds = &dailySession{
			GameID:    dailyIDPrefix + genID(),
			UserID:    uid,
			Date:      date,
			Pool:      pool,
			SecretIdx: idx,
			Attempts:  d.srv.cfg.Daily.Attempts,
			Start:     now,
		}
		d.sessions[key] = ds
	}
	d.mu.Unlock()

	ds.mu.Lock()
	defer ds.mu.Unlock()
	res, err := d.resume(r.Context(), ds)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// prune drops sessions of earlier dates. d.mu must be held.
func (d *dailyServer) prune(today string) {
	for k, ds := range d.sessions {
		if ds.Date != today {
			delete(d.sessions, k)
		}
	}
}

// resume reports the live state of ds, rebuilding it first if the store
// no longer has it. ds.mu must be held.
func (d *dailyServer) resume(ctx context.Context, ds *dailySession) (dailyNewRes, error) {
	res := dailyNewRes{GameID: ds.GameID, Date: ds.Date}
	view := func(sess *game.Session) error {
		v := viewOf(sess)
		res.WordLength = v.WordLength
		res.Candidates = v.Remaining
		res.Attempts = v.AttemptsRemaining
		return nil
	}
	err := d.srv.store.With(ctx, ds.GameID, view)
	if errors.Is(err, store.ErrNotFound) {
		if err = d.restore(ctx, ds); err == nil {
			err = d.srv.store.With(ctx, ds.GameID, view)
		}
	}
	return res, err
}

// restore rebuilds ds from its pool and replays every recorded guess.
// ds.mu must be held.
func (d *dailyServer) restore(ctx context.Context, ds *dailySession) error {
	sess, err := game.NewSession(ds.Pool, ds.Pool[ds.SecretIdx], ds.Attempts, game.WithID(ds.GameID))
	if err != nil {
		return err
	}
	for _, g := range ds.Guesses {
		if _, err := sess.Guess(g); err != nil {
			return err
		}
	}
	log.Debug().Str("gameId", ds.GameID).Int("guesses", len(ds.Guesses)).Msg("daily session restored")
	return d.srv.store.Save(ctx, sess)
}

type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type dailyGuessRes struct {
	guessRes
	Date    string `json:"date"`
	Guesses int    `json:"guesses"`
}

// handleGuess plays a guess in today's session and stores the result once it ends.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, _ := d.srv.ownerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}

	date := daily.DateKey(d.srv.now())
	key := uid + "|" + date
	d.mu.Lock()
	ds, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || ds.GameID != p.GameID {
		writeError(w, http.StatusConflict, "no_session", nil)
		return
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	t, err := d.srv.playGuess(r.Context(), ds.GameID, p.Guess)
	if errors.Is(err, store.ErrNotFound) {
		if err = d.restore(r.Context(), ds); err == nil {
			t, err = d.srv.playGuess(r.Context(), ds.GameID, p.Guess)
		}
	}
	if err != nil {
		writeGameError(w, err)
		return
	}
	ds.Guesses = append(ds.Guesses, t.word)

	if t.status.Terminal() {
		first := !ds.Finished
		ds.Finished = true
		if first {
			err := d.store.InsertResult(r.Context(), daily.Result{
				UserID:    uid,
				Date:      date,
				SecretIdx: ds.SecretIdx,
				Guesses:   t.guesses,
				Won:       t.status == game.StatusWon,
				ElapsedMs: int(d.srv.now().Sub(ds.Start).Milliseconds()),
			})
			if err != nil {
				log.Warn().Err(err).Str("user", uid).Str("date", date).Msg("insert daily result")
			}
		}
	}
	writeJSON(w, http.StatusOK, dailyGuessRes{guessRes: t.res, Date: date, Guesses: t.guesses})
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
