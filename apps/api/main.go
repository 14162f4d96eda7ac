package main

import (
	"log"
	"os"

	echoapi "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/fee"
	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
	emailsvc "github.com/trezcool/academia/services/email"
	logsvc "github.com/trezcool/academia/services/logger"
	"github.com/trezcool/academia/storage/database"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
	sqlxrepos "github.com/trezcool/academia/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	// set up repositories
	var (
		courseRepo  course.Repository
		studentRepo student.Repository
		feeRepo     fee.Repository
		hostelRepo  hostel.Repository
	)
	switch core.Conf.Database.Engine {
	case "postgres":
		db, err := database.Open(core.Conf)
		if err != nil {
			logger.Fatal("opening database", err)
		}
		defer func() { _ = db.Close() }()

		courseRepo = sqlxrepos.NewCourseRepository(db)
		studentRepo = sqlxrepos.NewStudentRepository(db)
		feeRepo = sqlxrepos.NewFeeRepository(db)
		hostelRepo = sqlxrepos.NewHostelRepository(db)
	default: // state lives in this process's memory only
		db, err := inmemdb.Open()
		if err != nil {
			logger.Fatal("opening in-memory database", err)
		}
		courseRepo = inmemdb.NewCourseRepository(db)
		studentRepo = inmemdb.NewStudentRepository(db)
		feeRepo = inmemdb.NewFeeRepository(db)
		hostelRepo = inmemdb.NewHostelRepository(db)
	}

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService(core.Conf.AppName, core.Conf.DefaultFromEmail)
	} else {
		mailSvc = emailsvc.NewSendgridService(core.Conf, logger)
	}

	courseSvc := course.NewService(courseRepo)
	studentSvc := student.NewService(studentRepo, courseRepo)
	feeSvc := fee.NewService(feeRepo, courseRepo, studentRepo, mailSvc)
	hostelSvc := hostel.NewService(hostelRepo, studentRepo)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:       core.Conf.Server.Address(),
			Logger:     logger,
			CourseSvc:  courseSvc,
			StudentSvc: studentSvc,
			FeeSvc:     feeSvc,
			HostelSvc:  hostelSvc,
		},
	)
	app.Start()
}
