package tetris

import "math/rand/v2"

// bag is the 7-bag randomizer: the seven shapes are shuffled and drawn
// one by one. A fresh permutation is generated once the bag is empty.
// https://tetris.wiki/Random_Generator
type bag struct {
	bag  []Shape
	rand *rand.Rand
}

func newBag(r *rand.Rand) *bag {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec
	}
	b := &bag{rand: r}
	b.fill()
	return b
}

func (b *bag) fill() {
	b.bag = append([]Shape(nil), Shapes[:]...)
	b.rand.Shuffle(len(b.bag), func(i, j int) { b.bag[i], b.bag[j] = b.bag[j], b.bag[i] })
}

func (b *bag) draw() Shape {
	if len(b.bag) == 0 {
		b.fill()
	}
	s := b.bag[0]
	b.bag = b.bag[1:]
	return s
}
