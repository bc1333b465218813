package artifact

import (
	"testing"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		input string
		want  Coordinate
		err   bool
	}{
		{"com.google.guava:guava:33.0.0", Coordinate{Org: "com.google.guava", Name: "guava", Revision: "33.0.0"}, false},
		{"org.typelevel::cats-core:2.10.0", Coordinate{Org: "org.typelevel", Name: "cats-core", Revision: "2.10.0", CrossSuffix: "_2.13"}, false},
		{"org:name", Coordinate{}, true},
		{"org::name", Coordinate{}, true},
		{"org:name:rev:extra", Coordinate{}, true},
		{"org: :rev", Coordinate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCoordinate(tt.input, "_2.13")
			if (err != nil) != tt.err {
				t.Fatalf("ParseCoordinate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("ParseCoordinate(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoordinate_ArtifactName(t *testing.T) {
	c := Coordinate{Org: "org.typelevel", Name: "cats-core", Revision: "2.10.0", CrossSuffix: "_2.13"}
	if got := c.ArtifactName(); got != "cats-core_2.13" {
		t.Errorf("ArtifactName() = %q", got)
	}
	if got := c.String(); got != "org.typelevel:cats-core_2.13:2.10.0" {
		t.Errorf("String() = %q", got)
	}
}

func TestUniqueCoordinates(t *testing.T) {
	a := Coordinate{Org: "o", Name: "a", Revision: "1"}
	b := Coordinate{Org: "o", Name: "b", Revision: "1"}
	got := UniqueCoordinates([]Coordinate{a, b, a, b, a})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("UniqueCoordinates = %+v", got)
	}
}

func TestUniqueResolved(t *testing.T) {
	src := Resolved{Descriptor: Descriptor{Name: "foo", Type: TypeSources, Extension: "jar", Classifier: "sources"}, Path: "/r/foo-sources.jar"}
	bin := Resolved{Descriptor: Descriptor{Name: "foo", Type: TypeBinary, Extension: "jar"}, Path: "/r/foo.jar"}
	samePathOtherDescriptor := Resolved{Descriptor: Descriptor{Name: "foo2", Type: TypeSources, Extension: "jar"}, Path: "/r/foo-sources.jar"}

	got := UniqueResolved([]Resolved{src, bin, src, samePathOtherDescriptor})
	if len(got) != 3 {
		t.Fatalf("expected 3 unique entries, got %d: %+v", len(got), got)
	}
}

func TestTypeForClassifier(t *testing.T) {
	tests := map[string]Type{
		"":        TypeBinary,
		"sources": TypeSources,
		"javadoc": TypeJavadoc,
		"tests":   TypeBinary,
	}
	for in, want := range tests {
		if got := TypeForClassifier(in); got != want {
			t.Errorf("TypeForClassifier(%q) = %q, want %q", in, got, want)
		}
	}
}
