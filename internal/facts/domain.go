// Package facts serves the animal-fact corner of the API: short cat
// and dog facts, readable by anyone, curated by authors.
package facts

import (
	"errors"
	"fmt"
	"time"
)

// ErrAnimalUnknown indicates an animal outside the supported set.
var ErrAnimalUnknown = errors.New("facts: unknown animal")

// Animal is a supported fact category.
type Animal string

const (
	AnimalCat Animal = "cat"
	AnimalDog Animal = "dog"
)

// ParseAnimal validates an animal string.
func ParseAnimal(s string) (Animal, error) {
	switch Animal(s) {
	case AnimalCat, AnimalDog:
		return Animal(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrAnimalUnknown, s)
}

// Fact is one stored fact.
type Fact struct {
	ID        int64
	Animal    Animal
	Content   string
	CreatedAt time.Time
}
