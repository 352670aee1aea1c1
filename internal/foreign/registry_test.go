package foreign

import (
	"strings"
	"testing"

	"github.com/amber-lang/amber/internal/types"
)

const canvasPayload = `{
  "classes": {
    "amber/canvas/KCanvas": {
      "methods": {},
      "static_methods": {
        "open": {"descriptor": "(Ljava/lang/String;II)V"},
        "drawRect": {"descriptor": "(DDDDI)V"}
      },
      "constructor": null,
      "is_interface": false,
      "interfaces": [],
      "abstract_methods": {},
      "fields": {},
      "static_fields": {"width": {"descriptor": "I"}},
      "inner_classes": {
        "amber/canvas/KCanvas$MouseCallback": {
          "methods": {"call": {"descriptor": "(DD)V"}},
          "static_methods": {},
          "constructor": null,
          "is_interface": true,
          "interfaces": [],
          "abstract_methods": {"call": {"descriptor": "(DD)V"}},
          "fields": {},
          "static_fields": {},
          "inner_classes": {}
        }
      }
    },
    "amber/canvas/Canvas": {
      "methods": {"resize": {"descriptor": "(II)Z"}},
      "static_methods": {},
      "constructor": {"descriptor": "(II)V"},
      "is_interface": false,
      "interfaces": [],
      "abstract_methods": {},
      "fields": {"title": {"descriptor": "Ljava/lang/String;"}},
      "static_fields": {},
      "inner_classes": {}
    }
  }
}`

func loadCanvasRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	if err := registry.LoadJSON(strings.NewReader(canvasPayload)); err != nil {
		t.Fatalf("LoadJSON error: %v", err)
	}
	return registry
}

func TestRegistryLoadJSON(t *testing.T) {
	registry := loadCanvasRegistry(t)

	info, ok := registry.Class("KCanvas")
	if !ok {
		t.Fatalf("Class(KCanvas) not found")
	}
	if info.InternalName != "amber/canvas/KCanvas" {
		t.Errorf("internal name = %s, want amber/canvas/KCanvas", info.InternalName)
	}

	open, ok := registry.StaticMethod("KCanvas", "open")
	if !ok {
		t.Fatalf("StaticMethod(KCanvas, open) not found")
	}
	if len(open.Params) != 3 || open.Params[0] != types.String || open.Params[1] != types.Int {
		t.Errorf("open params decoded wrong: %v", open.Params)
	}
	if open.Return != types.Nil {
		t.Errorf("open return = %s, want Nil", open.Return)
	}

	resize, ok := registry.InstanceMethod("Canvas", "resize")
	if !ok {
		t.Fatalf("InstanceMethod(Canvas, resize) not found")
	}
	if !types.IsBool(resize.Return) {
		t.Errorf("resize return = %s, want Bool", resize.Return)
	}

	canvas, _ := registry.Class("Canvas")
	if !canvas.HasConstructor || len(canvas.ConstructorParams) != 2 {
		t.Errorf("Canvas constructor = %v (has=%v), want two Integer params", canvas.ConstructorParams, canvas.HasConstructor)
	}
	if canvas.Fields["title"].Type != types.String {
		t.Errorf("Canvas.title field = %s, want String", canvas.Fields["title"].Type)
	}
}

func TestRegistryInnerClassesAndSAM(t *testing.T) {
	registry := loadCanvasRegistry(t)

	cb, ok := registry.Class("MouseCallback")
	if !ok {
		t.Fatalf("inner class MouseCallback not registered under its simple name")
	}
	if !cb.IsSAMInterface() {
		t.Fatalf("MouseCallback should be a SAM interface")
	}
	sam, ok := cb.SAMethod()
	if !ok {
		t.Fatalf("SAMethod() not found on SAM interface")
	}
	if sam.Name != "call" || len(sam.Params) != 2 {
		t.Errorf("SAM method = %s/%d params, want call/2", sam.Name, len(sam.Params))
	}

	kcanvas, _ := registry.Class("KCanvas")
	if kcanvas.IsSAMInterface() {
		t.Errorf("KCanvas is not an interface, must not report SAM")
	}
}

func TestRegistryRejectsBadDescriptor(t *testing.T) {
	payload := `{"classes": {"Broken": {
		"methods": {"bad": {"descriptor": "(Q)V"}},
		"static_methods": {}, "constructor": null, "is_interface": false,
		"interfaces": [], "abstract_methods": {}, "fields": {},
		"static_fields": {}, "inner_classes": {}
	}}}`
	registry := NewRegistry()
	if err := registry.LoadJSON(strings.NewReader(payload)); err == nil {
		t.Fatalf("LoadJSON accepted an undecodable descriptor, want error")
	}
}
