package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"

	"github.com/ipt-demo/hr-portal/backend/internal/config"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
	"github.com/ipt-demo/hr-portal/backend/internal/seed"
	"github.com/ipt-demo/hr-portal/backend/internal/store"
	"github.com/ipt-demo/hr-portal/backend/internal/utils"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机账户, 2: 为没有员工记录的账户插入随机员工记录, 3: 插入随机请求, 4: 导入员工名册)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&file, "file", "", "员工名册 CSV 文件路径")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 打开存储
	kv, err := store.Open(cfg)
	if err != nil {
		logger.Error("无法打开存储", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	if cfg.Store.Backend == "memory" {
		logger.Warn("当前使用内存存储，插入的数据在进程退出后会丢失")
	}

	// 创建 repository
	repo, err := repository.Open(store.NewAdapterFromConfig(kv, cfg, logger), logger)
	if err != nil {
		logger.Error("无法加载数据", "error", err)
		os.Exit(1)
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的账户数量")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			in := utils.GenerateRandomAccount(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if _, err := repo.CreateAccount(in, false); err != nil {
				slog.Error("无法插入账户", "email", in.Email, slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("插入账户成功", slog.Int("count", cnt))
	case 2:
		db := repo.Database()
		departments := db.DepartmentNames()

		hasEmployee := make(map[string]bool)
		for _, emp := range db.Employees {
			hasEmployee[emp.UserEmail] = true
		}

		cnt := 0
		for _, acc := range db.Accounts {
			if hasEmployee[acc.Email] {
				continue
			}
			if _, err := repo.CreateEmployee(utils.GenerateRandomEmployee(acc.Email, departments)); err != nil {
				slog.Error("无法插入员工记录", "email", acc.Email, slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("插入员工记录成功", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的请求数量")
			return
		}
		accounts := repo.ListAccounts()
		if len(accounts) == 0 {
			slog.Error("没有可以提交请求的账户")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			// 随机选一个账户作为提交人
			owner := accounts[rand.Intn(len(accounts))]
			if _, err := repo.CreateRequest(owner.Email, utils.GenerateRandomRequest()); err != nil {
				slog.Error("无法插入请求", "email", owner.Email, slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("插入请求成功", slog.Int("count", cnt))
	case 4:
		if file == "" {
			slog.Error("请通过 -file 指定员工名册")
			return
		}
		f, err := os.Open(file)
		if err != nil {
			slog.Error("打开文件失败", "error", err)
			return
		}
		defer f.Close()

		if _, err := seed.ImportEmployees(repo, f, cfg.Seed.User.Password); err != nil {
			slog.Error("导入员工名册失败", "error", err)
			return
		}
	default:
		slog.Error("指定的操作非法")
	}

	db := repo.Database()
	slog.Info("当前数据", "accounts", len(db.Accounts), "employees", len(db.Employees), "requests", len(db.Requests))
}
