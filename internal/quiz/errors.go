package quiz

import "errors"

// Every error the engine surfaces is scoped to one session or operation.
// The hosting layer translates these into user-facing messages or HTTP
// status codes; nothing here is fatal to the process.
var (
	// ErrInvalidSubmission: a submitted option id does not belong to the
	// question. Caller bug, never scored as zero.
	ErrInvalidSubmission = errors.New("submission references unknown option")

	// ErrSessionCompleted: operation attempted on a completed session.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrDuplicateAnswer: the current question already has a recorded answer.
	// Unreachable with monotonic index advance, but checked.
	ErrDuplicateAnswer = errors.New("question already answered")

	// ErrInsufficientQuestions: requested count exceeds the filtered pool.
	ErrInsufficientQuestions = errors.New("not enough questions in pool")

	// ErrSessionNotComplete: finalize called before completion.
	ErrSessionNotComplete = errors.New("session not complete")

	// ErrSessionNotFound: registry lookup miss.
	ErrSessionNotFound = errors.New("session not found")
)
