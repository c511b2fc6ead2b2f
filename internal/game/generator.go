package game

import (
	"fmt"
	"math/rand"
	"time"
)

// PieceGenerator decides which shape spawns next.
type PieceGenerator interface {
	Next() Shape
}

// Previewer is a generator that can tell the upcoming shape without
// consuming it.
type Previewer interface {
	Peek() Shape
}

// DieSides is the number of faces on the shape die.
const DieSides = 24

// ShapeForRoll maps a roll in [0, DieSides) to a shape. The weights are
// I 1, O 2, T 3, L 4, J 4, S 5, Z 5 out of 24, roughly the spread of two
// six-sided dice.
func ShapeForRoll(roll int) Shape {
	if roll < 0 || roll >= DieSides {
		panic(fmt.Sprintf("game: die roll %d out of range", roll))
	}
	switch {
	case roll == 0:
		return ShapeI
	case roll <= 2:
		return ShapeO
	case roll <= 5:
		return ShapeT
	case roll <= 9:
		return ShapeL
	case roll <= 13:
		return ShapeJ
	case roll <= 18:
		return ShapeS
	default:
		return ShapeZ
	}
}

// DiceGenerator rolls the weighted shape die. One roll is kept ahead so the
// next shape can be previewed.
type DiceGenerator struct {
	rng     *rand.Rand
	next    Shape
	pending bool
}

// NewDiceGenerator creates a seeded die. Seed 0 picks a time-based seed.
func NewDiceGenerator(seed int64) *DiceGenerator {
	return &DiceGenerator{rng: rand.New(rand.NewSource(resolveSeed(seed)))}
}

func (g *DiceGenerator) Next() Shape {
	s := g.Peek()
	g.pending = false
	return s
}

// Peek returns the next shape without consuming it.
func (g *DiceGenerator) Peek() Shape {
	if !g.pending {
		g.next = ShapeForRoll(g.rng.Intn(DieSides))
		g.pending = true
	}
	return g.next
}

// BagGenerator produces pieces using the 7-bag randomizer system.
// When created with the same seed, two generators produce identical sequences.
type BagGenerator struct {
	rng *rand.Rand
	bag []Shape
}

// NewBagGenerator creates a seeded 7-bag generator. Seed 0 picks a time-based
// seed.
func NewBagGenerator(seed int64) *BagGenerator {
	return &BagGenerator{rng: rand.New(rand.NewSource(resolveSeed(seed)))}
}

// Next returns the next shape from the bag.
func (g *BagGenerator) Next() Shape {
	if len(g.bag) == 0 {
		g.refill()
	}
	s := g.bag[0]
	g.bag = g.bag[1:]
	return s
}

// Peek returns the next shape without consuming it.
func (g *BagGenerator) Peek() Shape {
	if len(g.bag) == 0 {
		g.refill()
	}
	return g.bag[0]
}

func (g *BagGenerator) refill() {
	g.bag = append(g.bag[:0], Shapes[:]...)
	// Fisher-Yates shuffle
	for i := len(g.bag) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
	}
}

func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}
