package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	Sweep() (int, error)
}
