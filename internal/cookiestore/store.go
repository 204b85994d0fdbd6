package cookiestore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"coachboard/internal/metrics"
)

// Store is an http.CookieJar whose contents survive process restarts.
// Cookie matching is delegated to an in-memory cookiejar.Jar; every cookie
// the server sets is also written to SQLite and replayed into the jar on Open.
type Store struct {
	conn   *sql.DB
	jar    *cookiejar.Jar
	logger *slog.Logger
}

var _ http.CookieJar = (*Store)(nil)

// Open opens the cookie database at the specified path, creating the schema
// if needed, and loads every unexpired cookie into memory
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie store: %w", err)
	}

	// SQLite works best with a single writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping cookie store: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	s := &Store{
		conn:   conn,
		jar:    jar,
		logger: slog.Default(),
	}

	if err := s.Init(); err != nil {
		conn.Close()
		return nil, err
	}

	if err := s.load(); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

// Init creates the cookies table if it does not exist
func (s *Store) Init() error {
	if _, err := s.conn.Exec(Schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Health checks if the database connection is healthy
func (s *Store) Health() error {
	return s.conn.Ping()
}

// Cookies implements http.CookieJar
func (s *Store) Cookies(u *url.URL) []*http.Cookie {
	return s.jar.Cookies(u)
}

// SetCookies implements http.CookieJar. Persistence failures are logged and
// counted; the in-memory jar is always updated so the current process keeps
// working.
func (s *Store) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.jar.SetCookies(u, cookies)

	now := time.Now()
	for _, c := range cookies {
		var err error
		if isDeletion(c, now) {
			err = s.delete(u, c)
		} else {
			err = s.save(u, c, now)
		}
		if err != nil {
			s.logger.Error("Failed to persist cookie", "name", c.Name, "host", u.Host, "error", err)
		}
	}
}

func (s *Store) save(u *url.URL, c *http.Cookie, now time.Time) (err error) {
	defer observe(metrics.StoreOpSave, time.Now(), &err)

	var expiresAt *int64
	switch {
	case c.MaxAge > 0:
		v := now.Add(time.Duration(c.MaxAge) * time.Second).Unix()
		expiresAt = &v
	case !c.Expires.IsZero():
		v := c.Expires.Unix()
		expiresAt = &v
	}

	_, err = s.conn.Exec(`
		INSERT INTO cookies (
			origin, name, path, set_url, value, domain,
			expires_at, secure, http_only, same_site, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (origin, name, path) DO UPDATE SET
			set_url = excluded.set_url,
			value = excluded.value,
			domain = excluded.domain,
			expires_at = excluded.expires_at,
			secure = excluded.secure,
			http_only = excluded.http_only,
			same_site = excluded.same_site,
			updated_at = excluded.updated_at
	`, origin(u), c.Name, c.Path, setURL(u), c.Value, c.Domain,
		expiresAt, c.Secure, c.HttpOnly, int(c.SameSite), now.Unix())
	if err != nil {
		return fmt.Errorf("failed to save cookie: %w", err)
	}
	return nil
}

func (s *Store) delete(u *url.URL, c *http.Cookie) (err error) {
	defer observe(metrics.StoreOpDelete, time.Now(), &err)

	_, err = s.conn.Exec(`DELETE FROM cookies WHERE origin = ? AND name = ? AND path = ?`,
		origin(u), c.Name, c.Path)
	if err != nil {
		return fmt.Errorf("failed to delete cookie: %w", err)
	}
	return nil
}

// load replays persisted, unexpired cookies into the in-memory jar
func (s *Store) load() (err error) {
	defer observe(metrics.StoreOpLoad, time.Now(), &err)

	now := time.Now()
	rows, err := s.conn.Query(`
		SELECT set_url, name, path, value, domain, expires_at, secure, http_only, same_site
		FROM cookies
		WHERE expires_at IS NULL OR expires_at > ?
	`, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to load cookies: %w", err)
	}
	defer rows.Close()

	loaded := 0
	for rows.Next() {
		var (
			rawURL    string
			c         http.Cookie
			expiresAt *int64
			sameSite  int
		)
		if err := rows.Scan(&rawURL, &c.Name, &c.Path, &c.Value, &c.Domain,
			&expiresAt, &c.Secure, &c.HttpOnly, &sameSite); err != nil {
			return fmt.Errorf("failed to scan cookie: %w", err)
		}

		u, err := url.Parse(rawURL)
		if err != nil {
			s.logger.Warn("Skipping cookie with invalid origin", "url", rawURL, "error", err)
			continue
		}

		c.SameSite = http.SameSite(sameSite)
		if expiresAt != nil {
			c.Expires = time.Unix(*expiresAt, 0)
		}

		s.jar.SetCookies(u, []*http.Cookie{&c})
		loaded++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating cookies: %w", err)
	}

	s.logger.Debug("Loaded persisted cookies", "count", loaded)
	return nil
}

// PurgeExpired deletes cookies whose expiry has passed and returns how many
// were removed
func (s *Store) PurgeExpired() (n int, err error) {
	defer observe(metrics.StoreOpPurge, time.Now(), &err)

	result, err := s.conn.Exec(`DELETE FROM cookies WHERE expires_at IS NOT NULL AND expires_at <= ?`,
		time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired cookies: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

// Count returns the number of persisted cookies
func (s *Store) Count() (n int, err error) {
	defer observe(metrics.StoreOpCount, time.Now(), &err)

	if err = s.conn.QueryRow(`SELECT COUNT(*) FROM cookies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cookies: %w", err)
	}
	return n, nil
}

// isDeletion reports whether the server is asking for the cookie to be removed
func isDeletion(c *http.Cookie, now time.Time) bool {
	if c.MaxAge < 0 {
		return true
	}
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

func setURL(u *url.URL) string {
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String()
}

func observe(op string, start time.Time, err *error) {
	metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if *err != nil {
		metrics.StoreOperationErrorsTotal.WithLabelValues(op).Inc()
	}
}
