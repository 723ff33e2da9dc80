package store

import "context"

// Bulk synthetic-data generators. All the derivation happens inside
// PostgreSQL: names continue from the current maximum id so repeated runs
// never collide, and random() sampling is unseeded, so generated content is
// not reproducible across runs. Callers assert counts, not values.

const generateUsersSQL = `
WITH base AS (
  SELECT COALESCE(MAX(id), 0) AS u_base FROM users
),
gs AS (
  SELECT generate_series(1, ?) AS i
)
INSERT INTO users (full_name, username, tg_handle, created_at)
SELECT
  'User#'     || (b.u_base + gs.i)::text AS full_name,
  'username#' || (b.u_base + gs.i)::text AS username,
  CASE WHEN random() < 0.7
       THEN '@tg_handle#' || (b.u_base + gs.i)::text
       ELSE NULL
  END                                      AS tg_handle,
  NOW() - (random() * interval '365 days') AS created_at
FROM gs
CROSS JOIN base b;
`

const generateBooksSQL = `
WITH base AS (
    SELECT COALESCE(MAX(id), 0) AS book_base FROM books
),
params AS (
    SELECT
        book_base,
        ARRAY['Silent','Broken','Hidden','Lost','Bright',
              'Dark','Red','Golden','Old','New'] AS adjectives,
        ARRAY['City','Forest','World','Dream','River',
              'House','Secret','Story','Road','Garden'] AS nouns,
        ARRAY['Alan','Mira','John','Sara','Leo',
              'Nina','Victor','Lena','Owen','Ira'] AS author_first,
        ARRAY['Smith','Brown','Johnson','Miller','Davis',
              'Clark','Moore','Taylor','Wilson','King'] AS author_last,
        ARRAY['fantasy','sci-fi','mystery','non-fiction',
              'romance','thriller'] AS genres
    FROM base
),
gs AS (
    SELECT generate_series(1, ?) AS i
),
calc AS (
    SELECT
        gs.i,
        p.book_base,
        p.adjectives[1 + ((gs.i - 1) % array_length(p.adjectives, 1))]        AS adj,
        p.nouns[1 + ((gs.i - 1) % array_length(p.nouns, 1))]                  AS noun,
        p.author_first[1 + ((gs.i - 1) % array_length(p.author_first, 1))]    AS af,
        p.author_last[1 + (((gs.i - 1) * 3) % array_length(p.author_last, 1))] AS al,
        p.genres[1 + ((gs.i - 1) % array_length(p.genres, 1))]                AS genre
    FROM gs
    CROSS JOIN params p
)
INSERT INTO books (title, author, genre, created_at)
SELECT
    'Book ' || adj || ' ' || noun || ' #' || (book_base + i)::text AS title,
    af || ' ' || al                                                AS author,
    genre                                                          AS genre,
    NOW() - (random() * interval '365 days')                       AS created_at
FROM calc;
`

const countFreePairsSQL = `
WITH all_pairs AS (
  SELECT u.id AS user_id, b.id AS book_id
  FROM users u
  CROSS JOIN books b
),
missing AS (
  SELECT a.user_id, a.book_id
  FROM all_pairs a
  EXCEPT
  SELECT user_id, book_id FROM activity
)
SELECT COUNT(*) FROM missing;
`

const generateActivitySQL = `
WITH all_pairs AS (
  SELECT u.id AS user_id, b.id AS book_id
  FROM users u
  CROSS JOIN books b
),
missing AS (
  SELECT a.user_id, a.book_id
  FROM all_pairs a
  EXCEPT
  SELECT user_id, book_id FROM activity
),
pick AS (
  SELECT user_id, book_id
  FROM missing
  ORDER BY random()
  LIMIT ?
)
INSERT INTO activity (user_id, book_id)
SELECT user_id, book_id FROM pick;
`

const generateImpressionsSQL = `
WITH picked AS (
    SELECT user_id, book_id
    FROM activity
    ORDER BY random()
    LIMIT ?
)
INSERT INTO book_impressions (user_id, book_id, rating, comment, created_at)
SELECT
    p.user_id,
    p.book_id,
    ROUND(GREATEST(1.0, LEAST(5.0, 1.0 + random() * 4.0))::numeric, 1) AS rating,
    CASE WHEN random() < 0.5 THEN 'Nice' ELSE 'OK' END                 AS comment,
    NOW() - (random() * interval '365 days')                           AS created_at
FROM picked p;
`

func (s *Store) GenerateUsers(ctx context.Context, n int64) (int64, error) {
	res := s.db.WithContext(ctx).Exec(generateUsersSQL, n)
	return res.RowsAffected, classify(res.Error)
}

func (s *Store) GenerateBooks(ctx context.Context, n int64) (int64, error) {
	res := s.db.WithContext(ctx).Exec(generateBooksSQL, n)
	return res.RowsAffected, classify(res.Error)
}

// GenerateActivity inserts n random currently-absent (user, book) pairs.
// Capacity is checked before anything is inserted: asking for more pairs
// than exist free fails with a capacity error and inserts zero rows.
func (s *Store) GenerateActivity(ctx context.Context, n int64) (int64, error) {
	var available int64
	if err := s.db.WithContext(ctx).Raw(countFreePairsSQL).Scan(&available).Error; err != nil {
		return 0, classify(err)
	}
	if available < n {
		return 0, capacityError(n, available)
	}

	res := s.db.WithContext(ctx).Exec(generateActivitySQL, n)
	return res.RowsAffected, classify(res.Error)
}

// GenerateImpressions inserts n synthetic reviews over randomly picked
// existing activity pairs. Ratings land in [1.0, 5.0] at one fractional
// digit; comments alternate between two fixed values.
func (s *Store) GenerateImpressions(ctx context.Context, n int64) (int64, error) {
	res := s.db.WithContext(ctx).Exec(generateImpressionsSQL, n)
	return res.RowsAffected, classify(res.Error)
}
