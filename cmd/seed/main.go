package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/storeops-dev/shift-availability/backend/internal/config"
	"github.com/storeops-dev/shift-availability/backend/internal/repository"
	"github.com/storeops-dev/shift-availability/backend/internal/service"
	"github.com/storeops-dev/shift-availability/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 为所有员工随机提交空闲时间)")
	flag.IntVar(&n, "n", 5, "要插入的员工数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	if err := godotenv.Load(); err != nil {
		logger.Info("没有找到 .env 文件，直接从环境变量读取配置")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository 和 service
	repo := repository.NewRepository(cfg, dbpool)
	svc := service.NewService(repo)

	// 班次目录必须先存在，随机提交才有意义
	if _, err := repo.EnsureShiftsSeeded(cfg.Catalog.MaxCapacity); err != nil {
		logger.Error("无法生成班次目录", "error", err)
		return
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			if _, err := svc.Identify(utils.GenerateRandomChineseName()); err != nil {
				slog.Error("无法插入员工", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}

		slog.Info("插入员工成功", slog.Int("count", n-cnt))
	case 2:
		shifts, err := repo.GetAllShifts()
		if err != nil {
			slog.Error("无法获取班次目录", slog.String("error", err.Error()))
			return
		}

		employees, err := repo.GetAllEmployees()
		if err != nil {
			slog.Error("无法获取员工列表", slog.String("error", err.Error()))
			return
		}

		// 为每个员工随机提交一份空闲时间，班次满了属于正常情况，跳过即可
		cnt := 0
		for _, employee := range employees {
			ids := utils.RandomShiftSelection(shifts)
			if _, err := svc.SubmitAvailability(employee.ID, ids); err != nil {
				slog.Info("提交被拒绝", slog.Int64("employeeID", employee.ID), slog.String("reason", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("随机提交完成", slog.Int("count", cnt))
	default:
		slog.Error("不支持的操作", slog.Int("op", op))
	}
}
