package domain

type Decision string

const (
	DecisionLiked    Decision = "liked"
	DecisionDisliked Decision = "disliked"
)

func (d Decision) Valid() bool {
	return d == DecisionLiked || d == DecisionDisliked
}
