package apiv1

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// TransformRequest is the payload of StatusTransformer/Transform.
type TransformRequest struct {
	CSVContent   string
	Policy       string
	StatusColumn string
	ShortRows    string // "", "reject" or "pad"
}

// TransformReply is the result of StatusTransformer/Transform.
type TransformReply struct {
	Data   string
	Rows   int
	Counts map[string]int
}

func (r *TransformRequest) ToStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"csvContent":   r.CSVContent,
		"policy":       r.Policy,
		"statusColumn": r.StatusColumn,
		"shortRows":    r.ShortRows,
	})
}

func TransformRequestFromStruct(s *structpb.Struct) *TransformRequest {
	f := s.GetFields()
	return &TransformRequest{
		CSVContent:   f["csvContent"].GetStringValue(),
		Policy:       f["policy"].GetStringValue(),
		StatusColumn: f["statusColumn"].GetStringValue(),
		ShortRows:    f["shortRows"].GetStringValue(),
	}
}

func (r *TransformReply) ToStruct() (*structpb.Struct, error) {
	counts := make(map[string]any, len(r.Counts))
	for k, v := range r.Counts {
		counts[k] = v
	}
	return structpb.NewStruct(map[string]any{
		"data":   r.Data,
		"rows":   r.Rows,
		"counts": counts,
	})
}

func TransformReplyFromStruct(s *structpb.Struct) (*TransformReply, error) {
	f := s.GetFields()
	data, ok := f["data"]
	if !ok {
		return nil, fmt.Errorf("apiv1: reply without data field")
	}
	out := &TransformReply{
		Data:   data.GetStringValue(),
		Rows:   int(f["rows"].GetNumberValue()),
		Counts: map[string]int{},
	}
	for k, v := range f["counts"].GetStructValue().GetFields() {
		out.Counts[k] = int(v.GetNumberValue())
	}
	return out, nil
}
