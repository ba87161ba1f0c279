package dto

type StatusOutput struct {
	Running        bool
	Paused         bool
	ElapsedSeconds int
	Display        string
}

type StopOutput struct {
	ElapsedSeconds int
	Display        string
}
