package quiz

import (
	"math/rand"
	"time"
)

// Shuffler produces unbiased permutations of questions and answer options.
// It owns its rand.Rand so calls never touch global RNG state; tests inject
// a seeded source for reproducibility.
type Shuffler struct {
	rng *rand.Rand
}

func NewShuffler(src rand.Source) *Shuffler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Shuffler{rng: rand.New(src)}
}

// ShuffleQuestions returns a new slice holding every input question exactly
// once in uniformly random order. The input is not mutated.
func (s *Shuffler) ShuffleQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, j := range s.rng.Perm(len(questions)) {
		out[i] = questions[j]
	}
	return out
}

// ShuffleOptions returns a copy of q with its options in uniformly random
// order. Correctness flags travel with their option. True/false questions
// are shuffled like any other (a coin flip over two options).
func (s *Shuffler) ShuffleOptions(q Question) Question {
	cp := q.Clone()
	perm := s.rng.Perm(len(q.Options))
	for i, j := range perm {
		cp.Options[i] = q.Options[j]
	}
	return cp
}

// Sample selects count questions from pool without replacement, uniformly at
// random. count must not exceed len(pool).
func (s *Shuffler) Sample(pool []Question, count int) []Question {
	out := make([]Question, 0, count)
	for _, j := range s.rng.Perm(len(pool))[:count] {
		out = append(out, pool[j])
	}
	return out
}
