package triparticles

import "testing"

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
	if mockModule.installed {
		t.Errorf("Module should not be installed before Build")
	}
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	builder := NewAppBuilder()
	module := &MockModule{}
	builder.UseModule(module)

	app := builder.Build()

	if !module.installed {
		t.Errorf("Expected Install to be called on the module, but it was not")
	}
	if len(app.modules) != 1 {
		t.Errorf("Expected app to record 1 module, got %v", len(app.modules))
	}
}

func TestAppBuilder_Build_InstallsInOrder(t *testing.T) {
	var order []string
	module1 := &MockModule{order: &order, name: "first"}
	module2 := &MockModule{order: &order, name: "second"}

	builder := NewAppBuilder()
	builder.UseModule(module1)
	builder.UseModule(module2)

	builder.Build()

	if !module1.installed {
		t.Errorf("Expected Install to be called on the module 1, but it was not")
	}
	if !module2.installed {
		t.Errorf("Expected Install to be called on the module 2, but it was not")
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected install order [first second], got %v", order)
	}
}
