package mapper

import (
	"fmt"
	"math"
	"time"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/domain/exceptions"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func Task(task entities.Task) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":       structpb.NewStringValue(task.ID),
		"title":    structpb.NewStringValue(task.Title),
		"priority": structpb.NewStringValue(string(task.Priority)),
		"status":   structpb.NewStringValue(string(task.Status)),
		"assignee": structpb.NewStringValue(task.Assignee),
		"dueDate":  structpb.NewStringValue(task.DueDate),
		"progress": structpb.NewNumberValue(float64(task.Progress)),
	}}
}

func Tasks(tasks []entities.Task) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(tasks))}
	for _, task := range tasks {
		list.Values = append(list.Values, structpb.NewStructValue(Task(task)))
	}
	return list
}

func Buckets(buckets []entities.Bucket) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(buckets))}
	for _, b := range buckets {
		list.Values = append(list.Values, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"key":   structpb.NewStringValue(b.Key),
			"label": structpb.NewStringValue(b.Label),
			"count": structpb.NewNumberValue(float64(b.Count)),
		}}))
	}
	return list
}

func Dashboard(d entities.Dashboard) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"query": structpb.NewStringValue(d.Query),
		"tasks": structpb.NewListValue(Tasks(d.Tasks)),
		"metrics": structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"total":     structpb.NewNumberValue(float64(d.Metrics.Total)),
			"completed": structpb.NewNumberValue(float64(d.Metrics.Completed)),
			"overdue":   structpb.NewNumberValue(float64(d.Metrics.Overdue)),
		}}),
		"byStatus":    structpb.NewListValue(Buckets(d.ByStatus)),
		"byPriority":  structpb.NewListValue(Buckets(d.ByPriority)),
		"byAssignee":  structpb.NewListValue(Buckets(d.ByAssignee)),
		"generatedAt": structpb.NewStringValue(d.GeneratedAt.UTC().Format(time.RFC3339)),
	}}
}

// StringField returns the string stored under key, or "" when absent.
func StringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

// Patch reads the optional patch fields of an update request. Enum fields accept the
// canonical value or the display label.
func Patch(req *structpb.Struct) (entities.TaskPatch, error) {
	var patch entities.TaskPatch
	fields := req.GetFields()

	for _, key := range []string{"title", "assignee", "dueDate", "priority", "status"} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
			return entities.TaskPatch{}, fmt.Errorf("%w: %s must be a string", exceptions.ErrInvalidPatch, key)
		}
		s := v.GetStringValue()
		switch key {
		case "title":
			patch.Title = &s
		case "assignee":
			patch.Assignee = &s
		case "dueDate":
			patch.DueDate = &s
		case "priority":
			p, err := entities.ParsePriority(s)
			if err != nil {
				return entities.TaskPatch{}, err
			}
			patch.Priority = &p
		case "status":
			st, err := entities.ParseStatus(s)
			if err != nil {
				return entities.TaskPatch{}, err
			}
			patch.Status = &st
		}
	}

	if v, ok := fields["progress"]; ok {
		n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
		if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) {
			return entities.TaskPatch{}, fmt.Errorf("%w: progress must be an integer", exceptions.ErrInvalidPatch)
		}
		if n.NumberValue < 0 || n.NumberValue > 100 {
			return entities.TaskPatch{}, exceptions.ErrInvalidProgress
		}
		progress := int(n.NumberValue)
		patch.Progress = &progress
	}
	return patch, nil
}

func Error(err error) error {
	if err == nil {
		return nil
	}
	if exceptions.IsInvalidInput(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
