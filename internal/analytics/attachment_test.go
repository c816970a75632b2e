package analytics

import (
	"reflect"
	"testing"

	"github.com/luoran06/PairLog/internal/schema"
)

func TestLookupAttachmentDynamicsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{schema.AttachmentSecure, schema.AttachmentAnxious},
		{schema.AttachmentSecure, schema.AttachmentAvoidant},
		{schema.AttachmentAnxious, schema.AttachmentAvoidant},
	}
	for _, p := range pairs {
		ab := LookupAttachmentDynamics(p[0], p[1])
		ba := LookupAttachmentDynamics(p[1], p[0])
		if !reflect.DeepEqual(ab, ba) {
			t.Fatalf("%s/%s: lookup not symmetric", p[0], p[1])
		}
		if ab.Label == defaultAttachmentDynamics.Label {
			t.Fatalf("%s/%s: fell through to default", p[0], p[1])
		}
	}
}

func TestLookupAttachmentDynamicsAllSixPairsAuthored(t *testing.T) {
	types := []string{schema.AttachmentSecure, schema.AttachmentAnxious, schema.AttachmentAvoidant}
	for i, a := range types {
		for _, b := range types[i:] {
			d := LookupAttachmentDynamics(a, b)
			if d.Label == "" || len(d.Strengths) == 0 || len(d.Challenges) == 0 || len(d.Recommendations) == 0 {
				t.Fatalf("%s-%s: incomplete entry %+v", a, b, d)
			}
			s := LookupConflictScript(a, b)
			if len(s) == 0 {
				t.Fatalf("%s-%s: empty conflict script", a, b)
			}
		}
	}
}

func TestLookupAttachmentDynamicsDefaultFallback(t *testing.T) {
	d := LookupAttachmentDynamics(schema.AttachmentDisorganized, schema.AttachmentSecure)
	if d.Label != defaultAttachmentDynamics.Label {
		t.Fatalf("disorganized pair should use default, got %+v", d)
	}
	s := LookupConflictScript(schema.AttachmentDisorganized, schema.AttachmentAnxious)
	if !reflect.DeepEqual(s, defaultConflictScript) {
		t.Fatalf("disorganized pair script = %v, want default", s)
	}
	// 空类型按 secure 处理
	if got := LookupAttachmentDynamics("", ""); got.Label != attachmentDynamicsTable["secure-secure"].Label {
		t.Fatalf("empty types should resolve secure-secure, got %+v", got)
	}
}

func TestLookupConflictScriptSymmetric(t *testing.T) {
	ab := LookupConflictScript(schema.AttachmentAnxious, schema.AttachmentAvoidant)
	ba := LookupConflictScript(schema.AttachmentAvoidant, schema.AttachmentAnxious)
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("conflict script not symmetric: %v vs %v", ab, ba)
	}
}
