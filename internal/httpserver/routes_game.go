// internal/httpserver/routes_game.go
//
// Free-play hacking sessions.
//   - POST /game/new        build a pool (given words or dictionary sample) and start a session
//   - POST /game/guess      play one guess
//   - GET  /game/{id}       read-only view of a session
//   - GET  /game/{id}/hint  minimax suggestion over the remaining candidates
//   - POST /game/{id}/dud   remove one dud candidate
//
// Status codes: 400 for bad player input, 404 for unknown sessions,
// 409 for calls the session's state forbids (closed, wrong length).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termhack/internal/game"
	"github.com/robalobadob/termhack/internal/solver"
	"github.com/robalobadob/termhack/internal/store"
	"github.com/robalobadob/termhack/internal/words"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleView)
	r.Get("/game/{id}/hint", s.handleHint)
	r.Post("/game/{id}/dud", s.handleDud)
}

// newGameReq is the POST /game/new payload. Every field is optional:
// without words a pool of Count dictionary words of Length letters is drawn.
type newGameReq struct {
	Words    []*string `json:"words"`
	Secret   string    `json:"secret"`
	Attempts int       `json:"attempts"`
	Duds     int       `json:"duds"`
	Length   int       `json:"length"`
	Count    int       `json:"count"`
}

// rejection reports one word the pool refused.
type rejection struct {
	Word  string `json:"word"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type newGameRes struct {
	GameID     string      `json:"gameId"`
	WordLength int         `json:"wordLength"`
	Candidates []string    `json:"candidates"`
	Attempts   int         `json:"attempts"`
	Duds       int         `json:"duds"`
	Rejected   []rejection `json:"rejected"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}

	pool, rejected := game.NewPool(), []rejection{}
	for _, tok := range req.Words {
		if err := addToken(pool, tok); err != nil {
			rejected = append(rejected, toRejection(tok, err))
		}
	}
	if len(req.Words) == 0 {
		length, count := req.Length, req.Count
		if length <= 0 {
			length = s.cfg.Game.WordLength
		}
		if count <= 0 {
			count = s.cfg.Game.PoolSize
		}
		picked, err := s.dict.Sample(length, count, nil)
		if err != nil {
			writeError(w, http.StatusBadRequest, "no_words", err)
			return
		}
		for _, p := range picked {
			_ = pool.Add(p)
		}
	}
	if pool.Len() == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "empty_pool", "rejected": rejected})
		return
	}

	snap := pool.Snapshot()
	secret := snap[words.RandomIndex(len(snap))]
	if req.Secret != "" {
		if !pool.Contains(req.Secret) {
			writeError(w, http.StatusBadRequest, "secret_not_in_pool", nil)
			return
		}
		secret = game.Word(req.Secret)
	}
	attempts := req.Attempts
	if attempts == 0 {
		attempts = s.cfg.Game.Attempts
	}
	duds := req.Duds
	if duds == 0 {
		duds = s.cfg.Game.Duds
	}

	sess, err := game.NewSession(snap, secret, attempts, game.WithDuds(duds))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_session", err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", nil)
		return
	}
	s.recordStart(w, r, sess, len(snap), attempts)

	candidates := make([]string, len(snap))
	for i, wd := range snap {
		candidates[i] = wd.String()
	}
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:     sess.ID,
		WordLength: sess.WordLength(),
		Candidates: candidates,
		Attempts:   attempts,
		Duds:       sess.DudsRemaining(),
		Rejected:   rejected,
	})
}

func addToken(p *game.Pool, tok *string) error {
	if tok == nil {
		_, err := game.ValidateRef(nil)
		return &game.AddError{Kind: game.AddInvalid, Err: err}
	}
	return p.Add(*tok)
}

func toRejection(tok *string, err error) rejection {
	rj := rejection{Kind: "invalid", Error: err.Error()}
	if tok != nil {
		rj.Word = *tok
	}
	var ae *game.AddError
	if errors.As(err, &ae) {
		rj.Kind = ae.Kind.String()
	}
	return rj
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Result            string `json:"result"`
	Score             int    `json:"score"`
	Remaining         int    `json:"remaining"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
	Status            string `json:"status"`
	Password          string `json:"password,omitempty"`
}

// turn is a guess outcome captured under the session lock.
type turn struct {
	word    game.Word
	res     guessRes
	guesses int
	status  game.Status
}

// playGuess validates the token and plays it on the stored session.
func (s *Server) playGuess(ctx context.Context, id, token string) (turn, error) {
	wd, err := game.Validate(strings.TrimSpace(token))
	if err != nil {
		return turn{}, err
	}
	var t turn
	err = s.store.With(ctx, id, func(sess *game.Session) error {
		out, err := sess.Guess(wd)
		if err != nil {
			return err
		}
		t = turn{
			word: wd,
			res: guessRes{
				Result:            out.Result.String(),
				Score:             out.Score,
				Remaining:         out.Remaining,
				AttemptsRemaining: sess.AttemptsRemaining(),
				Status:            sess.Status().String(),
			},
			guesses: len(sess.History()),
			status:  sess.Status(),
		}
		if sess.Status() == game.StatusLost {
			t.res.Password = sess.Secret().String()
		}
		return nil
	})
	return t, err
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	if isDailyID(req.GameID) {
		writeGameError(w, store.ErrNotFound)
		return
	}
	t, err := s.playGuess(r.Context(), req.GameID, req.Guess)
	if err != nil {
		writeGameError(w, err)
		return
	}
	s.recordGuess(r.Context(), req.GameID, t)
	writeJSON(w, http.StatusOK, t.res)
}

// writeGameError maps engine and store errors onto status codes.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, game.ErrSessionClosed):
		writeError(w, http.StatusConflict, "session_closed", err)
	case game.IsContractViolation(err):
		writeError(w, http.StatusConflict, "contract_violation", err)
	case errors.Is(err, game.ErrInvalidWord):
		writeError(w, http.StatusBadRequest, "invalid_word", err)
	case errors.Is(err, game.ErrNoDuds):
		writeError(w, http.StatusBadRequest, "no_duds", err)
	default:
		log.Error().Err(err).Msg("game request")
		writeError(w, http.StatusInternalServerError, "server_error", nil)
	}
}

type attemptView struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

type sessionView struct {
	GameID            string        `json:"gameId"`
	Status            string        `json:"status"`
	WordLength        int           `json:"wordLength"`
	AttemptsRemaining int           `json:"attemptsRemaining"`
	DudsRemaining     int           `json:"dudsRemaining"`
	History           []attemptView `json:"history"`
	Remaining         []string      `json:"remaining"`
	Password          string        `json:"password,omitempty"`
}

func viewOf(sess *game.Session) sessionView {
	v := sessionView{
		GameID:            sess.ID,
		Status:            sess.Status().String(),
		WordLength:        sess.WordLength(),
		AttemptsRemaining: sess.AttemptsRemaining(),
		DudsRemaining:     sess.DudsRemaining(),
		History:           []attemptView{},
		Remaining:         []string{},
	}
	for _, a := range sess.History() {
		v.History = append(v.History, attemptView{Word: a.Word.String(), Score: a.Score})
	}
	for _, w := range sess.Remaining() {
		v.Remaining = append(v.Remaining, w.String())
	}
	if sess.Status().Terminal() {
		v.Password = sess.Secret().String()
	}
	return v
}

// withFreePlay is store.With restricted to free-play sessions; daily
// sessions are only reachable through /daily.
func (s *Server) withFreePlay(ctx context.Context, id string, fn func(*game.Session) error) error {
	if isDailyID(id) {
		return store.ErrNotFound
	}
	return s.store.With(ctx, id, fn)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	var v sessionView
	err := s.withFreePlay(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		v = viewOf(sess)
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var (
		suggestion game.Word
		worst      int
	)
	err := s.withFreePlay(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		if sess.Status().Terminal() {
			return &game.ContractError{Op: "hint", Err: game.ErrSessionClosed}
		}
		suggestion, worst = solver.Suggest(sess.Remaining())
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestion": suggestion.String(), "worstCase": worst})
}

func (s *Server) handleDud(w http.ResponseWriter, r *http.Request) {
	var res map[string]any
	err := s.withFreePlay(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		dud, err := sess.RemoveDud(words.RandomIndex)
		if err != nil {
			return err
		}
		res = map[string]any{
			"removed":       dud.String(),
			"remaining":     len(sess.Remaining()),
			"dudsRemaining": sess.DudsRemaining(),
		}
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ history rows --------------------------------

// recordStart persists an owner row for history/stats; the password is never stored.
func (s *Server) recordStart(w http.ResponseWriter, r *http.Request, sess *game.Session, candidates, attempts int) {
	owner, authed := s.ownerID(w, r)
	col := "anonymous_id"
	if authed {
		col = "user_id"
	}
	now := s.now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, `+col+`, word_length, candidates, attempts, started_at, status, guesses)
	                     VALUES (?,?,?,?,?,?,?,0)`, sess.ID, owner, sess.WordLength(), candidates, attempts, now, game.StatusInProgress.String())
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert game row")
	}
}

// recordGuess updates counters and, on a finished game, user stats (best effort).
func (s *Server) recordGuess(ctx context.Context, id string, t turn) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE games SET guesses=? WHERE id=?`, t.guesses, id); err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("update guesses")
	}
	if t.status.Terminal() {
		if _, err := tx.ExecContext(ctx, `UPDATE games SET status=?, finished_at=? WHERE id=?`,
			t.status.String(), s.now().UTC().Format(time.RFC3339), id); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("finish game")
		}
		if me := userFrom(ctx); me != nil {
			if err := bumpStats(ctx, tx, me.ID, t.status == game.StatusWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit game row")
	}
}
