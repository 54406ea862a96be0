package triparticles

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Exit asks the scheduler to stop after the current tick.
func (cmd *Commands) Exit() {
	cmd.app.requestExit()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
