package email

import (
	"log"

	"alternus-gallery-io/api/pkg/models"
)

type EmailJob struct {
	Type  string
	Order models.Order
}

type EmailWorker struct {
	Jobs chan EmailJob
	Quit chan bool
}

type EmailWorkerPool struct {
	Jobs    chan EmailJob
	Workers []EmailWorker
}

func WorkerPoolInstance(size int) *EmailWorkerPool {
	jobs := make(chan EmailJob, size)
	workers := make([]EmailWorker, size)

	for i := 0; i < size; i++ {
		workers[i] = EmailWorker{
			Jobs: jobs,
			Quit: make(chan bool),
		}
	}

	return &EmailWorkerPool{Jobs: jobs, Workers: workers}
}

func (pool *EmailWorkerPool) Start() {
	for id, worker := range pool.Workers {
		log.Printf("Email worker %d started!\n", id)
		go worker.Start()
	}
}

func (pool *EmailWorkerPool) Stop() {
	for id, worker := range pool.Workers {
		log.Printf("Email worker %d stopped!\n", id)
		go worker.Stop()
	}
}

func (pool *EmailWorkerPool) Enqueue(job EmailJob) {
	pool.Jobs <- job
}

func (w *EmailWorker) Start() {
	go func() {
		for {
			select {
			case job := <-w.Jobs:
				switch job.Type {
				case "order_confirmation":
					log.Printf("AlternusEmail: sending order confirmation for %s to %s", job.Order.OrderNumber, job.Order.Customer.Email)
					SendOrderConfirmationEmail(job.Order)
				case "order_shipped":
					log.Printf("AlternusEmail: sending shipped notification for %s to %s", job.Order.OrderNumber, job.Order.Customer.Email)
					SendOrderShippedEmail(job.Order)
				default:
					log.Printf("AlternusEmail: unknown job type %q", job.Type)
				}
			case <-w.Quit:
				return
			}
		}
	}()
}

func (w *EmailWorker) Stop() {
	w.Quit <- true
}
