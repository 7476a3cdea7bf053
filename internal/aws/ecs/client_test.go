package ecs

import (
	"context"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

type mockECSAPI struct {
	describeTaskDefinitionFunc func(ctx context.Context, params *awsecs.DescribeTaskDefinitionInput, optFns ...func(*awsecs.Options)) (*awsecs.DescribeTaskDefinitionOutput, error)
}

func (m *mockECSAPI) DescribeTaskDefinition(ctx context.Context, params *awsecs.DescribeTaskDefinitionInput, optFns ...func(*awsecs.Options)) (*awsecs.DescribeTaskDefinitionOutput, error) {
	return m.describeTaskDefinitionFunc(ctx, params, optFns...)
}

func TestGetTaskDefinition(t *testing.T) {
	mock := &mockECSAPI{
		describeTaskDefinitionFunc: func(ctx context.Context, params *awsecs.DescribeTaskDefinitionInput, optFns ...func(*awsecs.Options)) (*awsecs.DescribeTaskDefinitionOutput, error) {
			if got := awssdk.ToString(params.TaskDefinition); got != "onedocker-task-my-pce" {
				t.Errorf("TaskDefinition = %s, want onedocker-task-my-pce", got)
			}
			return &awsecs.DescribeTaskDefinitionOutput{
				TaskDefinition: &ecstypes.TaskDefinition{
					Family:   awssdk.String("onedocker-task-my-pce"),
					Revision: 3,
					Cpu:      awssdk.String("4096"),
					Memory:   awssdk.String("30720"),
					ContainerDefinitions: []ecstypes.ContainerDefinition{
						{Image: awssdk.String("example.com/one-docker-prod:latest")},
					},
				},
			}, nil
		},
	}

	client := NewClient(mock)
	def, err := client.GetTaskDefinition(context.Background(), "onedocker-task-my-pce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.CPU != 4096 {
		t.Errorf("CPU = %d, want 4096", def.CPU)
	}
	if def.Memory != 30720 {
		t.Errorf("Memory = %d, want 30720", def.Memory)
	}
	if def.Image != "example.com/one-docker-prod:latest" {
		t.Errorf("Image = %s, want example.com/one-docker-prod:latest", def.Image)
	}
	if def.Revision != 3 {
		t.Errorf("Revision = %d, want 3", def.Revision)
	}
}

func TestGetTaskDefinition_BadCapacity(t *testing.T) {
	mock := &mockECSAPI{
		describeTaskDefinitionFunc: func(ctx context.Context, params *awsecs.DescribeTaskDefinitionInput, optFns ...func(*awsecs.Options)) (*awsecs.DescribeTaskDefinitionOutput, error) {
			return &awsecs.DescribeTaskDefinitionOutput{
				TaskDefinition: &ecstypes.TaskDefinition{
					Family: awssdk.String("bad"),
					Cpu:    awssdk.String("not-a-number"),
				},
			}, nil
		},
	}

	client := NewClient(mock)
	if _, err := client.GetTaskDefinition(context.Background(), "bad"); err == nil {
		t.Fatal("expected an error for unparsable cpu")
	}
}

func TestGetTaskDefinition_Missing(t *testing.T) {
	mock := &mockECSAPI{
		describeTaskDefinitionFunc: func(ctx context.Context, params *awsecs.DescribeTaskDefinitionInput, optFns ...func(*awsecs.Options)) (*awsecs.DescribeTaskDefinitionOutput, error) {
			return &awsecs.DescribeTaskDefinitionOutput{}, nil
		},
	}

	client := NewClient(mock)
	if _, err := client.GetTaskDefinition(context.Background(), "ghost"); err == nil {
		t.Fatal("expected an error for missing task definition")
	}
}
