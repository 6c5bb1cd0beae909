package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hugohenrick/erp-pdv/internal/infrastructure/database"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env é opcional
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var databaseURL string

	root := &cobra.Command{
		Use:           "migration",
		Short:         "Gerencia o schema do banco do PDV",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", "",
		"URL do PostgreSQL (padrão: DATABASE_URL ou variáveis DB_*)")

	withMigrator := func(fn func(mg *database.Migrator) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			url := databaseURL
			if url == "" {
				url = database.NewPostgresConfigFromEnv().ConnectionString()
			}
			mg, err := database.NewMigrator(url)
			if err != nil {
				return err
			}
			defer mg.Close()
			return fn(mg)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas as migrações pendentes",
			RunE: withMigrator(func(mg *database.Migrator) error {
				if err := mg.Up(); err != nil {
					return err
				}
				log.Println("Migrações executadas com sucesso!")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Desfaz a última migração",
			RunE: withMigrator(func(mg *database.Migrator) error {
				if err := mg.Down(); err != nil {
					return err
				}
				log.Println("Última migração desfeita")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Mostra a versão atual do schema",
			RunE: withMigrator(func(mg *database.Migrator) error {
				v, dirty, err := mg.Version()
				if err != nil {
					return err
				}
				fmt.Printf("versão: %d", v)
				if dirty {
					fmt.Print(" (suja)")
				}
				fmt.Println()
				return nil
			}),
		},
	)

	return root
}
