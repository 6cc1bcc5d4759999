package apitest

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"flicksy/pkg/database"
	"flicksy/pkg/models"
)

//go:embed schema.sql
var schema string

// Title is a catalog entry the fake can add to a watchlist.
type Title struct {
	Key         models.MediaKey
	Title       string
	PosterPath  string
	Overview    string
	VoteAverage *float64
	Date        string
}

type Person struct {
	ID          int
	Name        string
	ProfilePath string
}

type User struct {
	ID           string
	Seq          int
	Name         string
	Email        string
	PasswordHash string
}

// Store is the state behind the fake. Accounts, watchlists and reviews live
// in an in-memory sqlite database the way the real backend keeps them; the
// catalog stands in for the upstream movie API and stays in maps. Tests may
// seed both directly.
type Store struct {
	db *sql.DB

	mu     sync.Mutex
	titles map[models.MediaKey]Title
	order  []models.MediaKey
	people []Person
	cast   map[models.MediaKey][]models.CastMember
	offers map[models.MediaKey]models.ProviderOffers
}

func NewStore() (*Store, error) {
	db, err := database.Open(database.Config{Path: database.MemoryPath})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:     db,
		titles: map[models.MediaKey]Title{},
		cast:   map[models.MediaKey][]models.CastMember{},
		offers: map[models.MediaKey]models.ProviderOffers{},
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) AddUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Name, strings.ToLower(u.Email), u.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) userByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT seq, id, name, email, password_hash FROM users WHERE email = ?
	`, strings.ToLower(strings.TrimSpace(email))))
}

func (s *Store) userByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT seq, id, name, email, password_hash FROM users WHERE id = ?
	`, id))
}

// scanUser returns nil, nil when there is no such user.
func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.Seq, &u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *Store) AddTitle(t Title) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.titles[t.Key]; !ok {
		s.order = append(s.order, t.Key)
	}
	s.titles[t.Key] = t
}

func (s *Store) AddPerson(p Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = append(s.people, p)
}

func (s *Store) SetCast(key models.MediaKey, cast []models.CastMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cast[key] = cast
}

func (s *Store) SetOffers(key models.MediaKey, offers models.ProviderOffers) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[key] = offers
}

func (s *Store) title(key models.MediaKey) (Title, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.titles[key]
	return t, ok
}

func (s *Store) castFor(key models.MediaKey) ([]models.CastMember, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cast[key]
	return c, ok
}

func (s *Store) offersFor(key models.MediaKey) (models.ProviderOffers, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[key]
	return o, ok
}

// Search matches titles and people by case-insensitive substring.
func (s *Store) Search(q string) models.SearchResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	q = strings.ToLower(q)
	out := models.SearchResultSet{
		Movies:  []models.SearchResult{},
		TVShows: []models.SearchResult{},
		People:  []models.SearchResult{},
	}
	for _, key := range s.order {
		t := s.titles[key]
		if !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		r := models.SearchResult{ID: key.TMDBID, PosterPath: t.PosterPath}
		if key.MediaType == models.MediaMovie {
			r.Title = t.Title
			out.Movies = append(out.Movies, r)
		} else {
			r.Name = t.Title
			out.TVShows = append(out.TVShows, r)
		}
	}
	for _, p := range s.people {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out.People = append(out.People, models.SearchResult{ID: p.ID, Name: p.Name, ProfilePath: p.ProfilePath})
		}
	}
	return out
}

// Watchlist returns the user's entries, newest first.
func (s *Store) Watchlist(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT w.id, u.seq, w.tmdb_id, w.media_type, w.title, w.poster_path,
		       w.overview, w.vote_average, w.air_date, w.added_on
		FROM watchlist_items w
		JOIN users u ON u.seq = w.user_seq
		WHERE u.id = ?
		ORDER BY w.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	out := []models.WatchlistEntry{}
	for rows.Next() {
		var (
			e    models.WatchlistEntry
			vote sql.NullFloat64
			date string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.TMDBID, &e.MediaType, &e.Title, &e.PosterPath,
			&e.Overview, &vote, &date, &e.AddedOn); err != nil {
			return nil, fmt.Errorf("scan watchlist: %w", err)
		}
		// The backend fills both naming pairs regardless of media type.
		e.Name = e.Title
		e.ReleaseDate, e.FirstAirDate = date, date
		if vote.Valid {
			v := vote.Float64
			e.VoteAverage = &v
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}
	return out, nil
}

// SeedWatchlist adds key for the user with the given email, as if the
// user had clicked it.
func (s *Store) SeedWatchlist(email string, key models.MediaKey) error {
	ctx := context.Background()
	u, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("seed watchlist: no user %q", email)
	}
	_, found, err := s.addToWatchlist(ctx, u, key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("seed watchlist: no title %s", key)
	}
	return nil
}

// addToWatchlist reports added=false, found=true for a duplicate and
// found=false for a title the catalog does not know.
func (s *Store) addToWatchlist(ctx context.Context, u *User, key models.MediaKey) (added, found bool, err error) {
	t, ok := s.title(key)
	if !ok {
		return false, false, nil
	}
	var vote any
	if t.VoteAverage != nil {
		vote = *t.VoteAverage
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO watchlist_items
			(user_seq, tmdb_id, media_type, title, poster_path, overview, vote_average, air_date, added_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_seq, tmdb_id, media_type) DO NOTHING
	`, u.Seq, key.TMDBID, string(key.MediaType), t.Title, t.PosterPath, t.Overview, vote, t.Date,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, true, fmt.Errorf("add watchlist item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, true, nil
}

func (s *Store) removeFromWatchlist(ctx context.Context, u *User, key models.MediaKey) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM watchlist_items
		WHERE user_seq = ? AND tmdb_id = ? AND media_type = ?
	`, u.Seq, key.TMDBID, string(key.MediaType))
	if err != nil {
		return false, fmt.Errorf("remove watchlist item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// addReview returns created=false when the user already reviewed key.
func (s *Store) addReview(ctx context.Context, u *User, key models.MediaKey, text string, rating int) (models.ReviewRecord, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (user_seq, tmdb_id, media_type, content, rating)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_seq, tmdb_id, media_type) DO NOTHING
	`, u.Seq, key.TMDBID, string(key.MediaType), text, rating)
	if err != nil {
		return models.ReviewRecord{}, false, fmt.Errorf("add review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ReviewRecord{}, false, nil
	}
	return models.ReviewRecord{Author: u.Name, Content: text, Rating: rating}, true, nil
}
