package triparticles

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	modules   []Module
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	ticks         uint64
	exitRequested bool
	shutDown      bool
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.initStage(stage)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// UseModules installs modules in order.
func (app *App) UseModules(modules ...Module) *App {
	for _, module := range modules {
		app.modules = append(app.modules, module)
		module.Install(app, app.Commands())
	}
	return app
}

// Tick runs every stage except Finale once. It must not be called from a
// system.
func (app *App) Tick() {
	if app.shutDown {
		panic("Tick called after Shutdown")
	}
	app.ticks++
	for _, stage := range app.stages {
		if stage.Name == Finale.Name {
			continue
		}
		app.callStage(stage)
	}
}

// Ticks returns how many times Tick has run.
func (app *App) Ticks() uint64 { return app.ticks }

// Shutdown runs the Finale stage. Only the first call has any effect.
func (app *App) Shutdown() {
	if app.shutDown {
		return
	}
	app.shutDown = true
	app.callStage(Finale)
}

// ExitRequested reports whether a system or module asked the app to stop.
func (app *App) ExitRequested() bool { return app.exitRequested }

func (app *App) requestExit() { app.exitRequested = true }

func (app *App) callStage(stage Stage) {
	for _, system := range app.systems[stage.Name] {
		app.callSystem(system)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType == nil || resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %v must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource looks up a resource by its element type.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	v, ok := r.(*T)
	return v, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			app.unresolved(systemValue, systemType, argType)
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(app.Commands())
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			app.unresolved(systemValue, systemType, argType)
		}
	}
	systemValue.Call(args)
}

func (app *App) unresolved(systemValue reflect.Value, systemType, argType reflect.Type) {
	msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		runtime.FuncForPC(systemValue.Pointer()).Name(),
		fmt.Sprint(systemType),
		fmt.Sprint(argType),
	)
	app.Logger().Errorf("%s", msg)
	panic(msg)
}
