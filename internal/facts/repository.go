package facts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive/internal/platform/httpx"
)

// RepositoryPort defines data access methods for facts.
type RepositoryPort interface {
	ListByAnimal(ctx context.Context, animal Animal) ([]Fact, error)
	RandomByAnimal(ctx context.Context, animal Animal) (Fact, error)
	Insert(ctx context.Context, animal Animal, content string) (Fact, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByAnimal returns all facts for one animal.
func (r *Repository) ListByAnimal(ctx context.Context, animal Animal) ([]Fact, error) {
	const query = `SELECT id, animal, content, created_at FROM animal_facts WHERE animal = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, string(animal))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []Fact
	for rows.Next() {
		var f Fact
		var animalRaw string
		if err := rows.Scan(&f.ID, &animalRaw, &f.Content, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Animal = Animal(animalRaw)
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

// RandomByAnimal returns one random fact for the animal.
func (r *Repository) RandomByAnimal(ctx context.Context, animal Animal) (Fact, error) {
	const query = `SELECT id, animal, content, created_at FROM animal_facts WHERE animal = $1 ORDER BY random() LIMIT 1`
	var (
		f         Fact
		animalRaw string
	)
	err := r.pool.QueryRow(ctx, query, string(animal)).Scan(&f.ID, &animalRaw, &f.Content, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Fact{}, httpx.ErrNotFound
		}
		return Fact{}, err
	}
	f.Animal = Animal(animalRaw)
	return f, nil
}

// Insert stores a new fact.
func (r *Repository) Insert(ctx context.Context, animal Animal, content string) (Fact, error) {
	const query = `
		INSERT INTO animal_facts (animal, content, created_at)
		VALUES ($1, $2, now())
		RETURNING id, animal, content, created_at`
	var (
		f         Fact
		animalRaw string
	)
	err := r.pool.QueryRow(ctx, query, string(animal), content).Scan(&f.ID, &animalRaw, &f.Content, &f.CreatedAt)
	if err != nil {
		return Fact{}, err
	}
	f.Animal = Animal(animalRaw)
	return f, nil
}
