package core

// RenderContext is passed to the renderer with every route.
type RenderContext struct {
	GenerateMode bool `json:"generateMode"`
}

type CollisionPolicy string

const (
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionWarn      CollisionPolicy = "warn"
	CollisionError     CollisionPolicy = "error"
)

func ParseCollisionPolicy(s string) (CollisionPolicy, bool) {
	switch CollisionPolicy(s) {
	case "", CollisionOverwrite:
		return CollisionOverwrite, true
	case CollisionWarn:
		return CollisionWarn, true
	case CollisionError:
		return CollisionError, true
	}
	return "", false
}
