package cmd

import (
	"fmt"

	"github.com/narvanalabs/greetd/internal/deploy"
	"github.com/narvanalabs/greetd/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	deployCmdDescription = `The deploy command pushes the current build to the given
	environment and verifies the target instance answers its
	health endpoint before declaring the deployment done.`
	deployCmd = &cli.Command{
		Name:        "deploy",
		Usage:       "Deploy to an environment and verify it is healthy.",
		Description: deployCmdDescription,
		Action:      deployAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "The deployment environment.",
				Value:   "dev",
				EnvVars: []string{"GREETD_DEPLOY_ENV"},
			},
			&cli.StringFlag{
				Name:    "server",
				Usage:   "The base URL of the target instance.",
				Value:   "http://localhost:8080",
				EnvVars: []string{"GREETD_DEPLOY_SERVER"},
			},
		},
	}
)

func deployAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	env := ctx.String("env")
	target := ctx.String("server")

	fmt.Printf("Deploying to %s...\n", env)

	client := deploy.NewClient(target, log)
	if err := client.Check(ctx.Context); err != nil {
		return cli.Exit(fmt.Sprintf("deployment failed: %s", err), 1)
	}

	fmt.Println("Deployment complete!")

	return nil
}

func init() {
	rootApp.Commands = append(rootApp.Commands, deployCmd)
}
