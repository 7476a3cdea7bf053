package ecs

// TaskDefinitionInfo carries the task-level capacity and the image of
// the first container of a task definition.
type TaskDefinitionInfo struct {
	Family   string
	Revision int
	CPU      int
	Memory   int
	Image    string
}
