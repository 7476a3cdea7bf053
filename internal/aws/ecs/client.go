package ecs

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
)

type ECSAPI interface {
	DescribeTaskDefinition(ctx context.Context, params *awsecs.DescribeTaskDefinitionInput, optFns ...func(*awsecs.Options)) (*awsecs.DescribeTaskDefinitionOutput, error)
}

type Client struct {
	api ECSAPI
}

func NewClient(api ECSAPI) *Client {
	return &Client{api: api}
}

// GetTaskDefinition resolves a task definition by family name or ARN.
// Task-level cpu and memory are reported by the API as strings.
func (c *Client) GetTaskDefinition(ctx context.Context, name string) (*TaskDefinitionInfo, error) {
	out, err := c.api.DescribeTaskDefinition(ctx, &awsecs.DescribeTaskDefinitionInput{
		TaskDefinition: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeTaskDefinition: %w", err)
	}

	def := out.TaskDefinition
	if def == nil {
		return nil, fmt.Errorf("task definition %s not found", name)
	}

	info := &TaskDefinitionInfo{
		Family:   aws.ToString(def.Family),
		Revision: int(def.Revision),
	}
	if info.CPU, err = parseCapacity("cpu", def.Cpu); err != nil {
		return nil, fmt.Errorf("task definition %s: %w", name, err)
	}
	if info.Memory, err = parseCapacity("memory", def.Memory); err != nil {
		return nil, fmt.Errorf("task definition %s: %w", name, err)
	}
	if len(def.ContainerDefinitions) > 0 {
		info.Image = aws.ToString(def.ContainerDefinitions[0].Image)
	}
	return info, nil
}

func parseCapacity(field string, value *string) (int, error) {
	if value == nil {
		return 0, nil
	}
	n, err := strconv.Atoi(aws.ToString(value))
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", field, aws.ToString(value), err)
	}
	return n, nil
}
