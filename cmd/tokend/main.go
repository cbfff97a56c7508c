package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tokenledger/tokend/internal/config"
	"github.com/tokenledger/tokend/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := cli.NewApp()
	app.Name = "tokend"
	app.Version = version
	app.Usage = "ledger engine for fungible and unique assets"
	app.Flags = []cli.Flag{
		config.Datadir,
		config.LogLevel,
		config.DbType,
		config.EventSinkType,
	}
	app.Commands = []*cli.Command{
		assetCmd,
		uniqueCmd,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

var assetCmd = &cli.Command{
	Name:  "asset",
	Usage: "manage fungible assets",
	Subcommands: []*cli.Command{
		{
			Name:   "create",
			Usage:  "register a new asset owned by the calling account",
			Flags:  []cli.Flag{accountFlag},
			Action: assetCreateAction,
		},
		{
			Name:   "set-metadata",
			Usage:  "set the name and symbol of an asset (owner only)",
			Flags:  []cli.Flag{accountFlag, assetIdFlag, nameFlag, symbolFlag},
			Action: assetSetMetadataAction,
		},
		{
			Name:   "mint",
			Usage:  "mint new units to a recipient (owner only)",
			Flags:  []cli.Flag{accountFlag, assetIdFlag, amountFlag, toFlag},
			Action: assetMintAction,
		},
		{
			Name:   "burn",
			Usage:  "burn units from the calling account's balance",
			Flags:  []cli.Flag{accountFlag, assetIdFlag, amountFlag},
			Action: assetBurnAction,
		},
		{
			Name:   "transfer",
			Usage:  "move units from the calling account to a recipient",
			Flags:  []cli.Flag{accountFlag, assetIdFlag, amountFlag, toFlag},
			Action: assetTransferAction,
		},
		{
			Name:   "info",
			Usage:  "show the details and metadata of an asset",
			Flags:  []cli.Flag{assetIdFlag},
			Action: assetInfoAction,
		},
		{
			Name:   "balance",
			Usage:  "show the balance of an account for an asset",
			Flags:  []cli.Flag{assetIdFlag, balanceAccountFlag},
			Action: assetBalanceAction,
		},
	},
}

var uniqueCmd = &cli.Command{
	Name:  "unique",
	Usage: "manage unique assets",
	Subcommands: []*cli.Command{
		{
			Name:   "mint",
			Usage:  "mint a new unique asset, crediting the whole supply to the creator",
			Flags:  []cli.Flag{accountFlag, metadataFlag, supplyFlag},
			Action: uniqueMintAction,
		},
		{
			Name:   "burn",
			Usage:  "burn units from the calling account's holding",
			Flags:  []cli.Flag{accountFlag, assetIdFlag, amountFlag},
			Action: uniqueBurnAction,
		},
		{
			Name:   "transfer",
			Usage:  "move units from the calling account to a recipient",
			Flags:  []cli.Flag{accountFlag, assetIdFlag, amountFlag, toFlag},
			Action: uniqueTransferAction,
		},
		{
			Name:   "info",
			Usage:  "show the details of a unique asset",
			Flags:  []cli.Flag{assetIdFlag},
			Action: uniqueInfoAction,
		},
		{
			Name:   "balance",
			Usage:  "show the holding of an account for a unique asset",
			Flags:  []cli.Flag{assetIdFlag, balanceAccountFlag},
			Action: uniqueBalanceAction,
		},
	},
}

func assetCreateAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	assetId, err := cfg.AssetService().Create(
		c.Context, domain.AccountId(c.String(accountFlagName)),
	)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{"asset_id": assetId})
}

func assetSetMetadataAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	if err := cfg.AssetService().SetMetadata(
		c.Context,
		domain.AccountId(c.String(accountFlagName)),
		domain.AssetId(c.Uint64(assetIdFlagName)),
		[]byte(c.String(nameFlagName)),
		[]byte(c.String(symbolFlagName)),
	); err != nil {
		return err
	}

	fmt.Println("metadata updated")
	return nil
}

func assetMintAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	amount, err := domain.ParseAmount(c.String(amountFlagName))
	if err != nil {
		return err
	}

	if err := cfg.AssetService().Mint(
		c.Context,
		domain.AccountId(c.String(accountFlagName)),
		domain.AssetId(c.Uint64(assetIdFlagName)),
		amount,
		domain.AccountId(c.String(toFlagName)),
	); err != nil {
		return err
	}

	fmt.Println("minted")
	return nil
}

func assetBurnAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	amount, err := domain.ParseAmount(c.String(amountFlagName))
	if err != nil {
		return err
	}

	if err := cfg.AssetService().Burn(
		c.Context,
		domain.AccountId(c.String(accountFlagName)),
		domain.AssetId(c.Uint64(assetIdFlagName)),
		amount,
	); err != nil {
		return err
	}

	fmt.Println("burned")
	return nil
}

func assetTransferAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	amount, err := domain.ParseAmount(c.String(amountFlagName))
	if err != nil {
		return err
	}

	moved, err := cfg.AssetService().Transfer(
		c.Context,
		domain.AccountId(c.String(accountFlagName)),
		domain.AssetId(c.Uint64(assetIdFlagName)),
		amount,
		domain.AccountId(c.String(toFlagName)),
	)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{"moved": moved.String()})
}

func assetInfoAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	assetId := domain.AssetId(c.Uint64(assetIdFlagName))
	details, err := cfg.AssetService().GetAsset(c.Context, assetId)
	if err != nil {
		return err
	}
	if details == nil {
		return fmt.Errorf("asset %d does not exist", assetId)
	}

	info := map[string]interface{}{
		"asset_id": assetId,
		"owner":    details.Owner,
		"supply":   details.Supply.String(),
	}
	metadata, err := cfg.AssetService().GetMetadata(c.Context, assetId)
	if err != nil {
		return err
	}
	if metadata != nil {
		info["name"] = string(metadata.Name)
		info["symbol"] = string(metadata.Symbol)
	}

	return printJSON(info)
}

func assetBalanceAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	balance, err := cfg.AssetService().GetBalance(
		c.Context,
		domain.AssetId(c.Uint64(assetIdFlagName)),
		domain.AccountId(c.String(accountFlagName)),
	)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{"balance": balance.String()})
}

func uniqueMintAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	supply, err := domain.ParseAmount(c.String(supplyFlagName))
	if err != nil {
		return err
	}

	assetId, err := cfg.UniqueAssetService().Mint(
		c.Context,
		domain.AccountId(c.String(accountFlagName)),
		[]byte(c.String(metadataFlagName)),
		supply,
	)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{"asset_id": assetId})
}

func uniqueBurnAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	amount, err := domain.ParseAmount(c.String(amountFlagName))
	if err != nil {
		return err
	}

	if err := cfg.UniqueAssetService().Burn(
		c.Context,
		domain.AccountId(c.String(accountFlagName)),
		domain.AssetId(c.Uint64(assetIdFlagName)),
		amount,
	); err != nil {
		return err
	}

	fmt.Println("burned")
	return nil
}

func uniqueTransferAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	amount, err := domain.ParseAmount(c.String(amountFlagName))
	if err != nil {
		return err
	}

	moved, err := cfg.UniqueAssetService().Transfer(
		c.Context,
		domain.AccountId(c.String(accountFlagName)),
		domain.AssetId(c.Uint64(assetIdFlagName)),
		amount,
		domain.AccountId(c.String(toFlagName)),
	)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{"moved": moved.String()})
}

func uniqueInfoAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	assetId := domain.AssetId(c.Uint64(assetIdFlagName))
	details, err := cfg.UniqueAssetService().GetUniqueAsset(c.Context, assetId)
	if err != nil {
		return err
	}
	if details == nil {
		return fmt.Errorf("unique asset %d does not exist", assetId)
	}

	return printJSON(map[string]interface{}{
		"asset_id": assetId,
		"creator":  details.Creator,
		"metadata": string(details.Metadata),
		"supply":   details.Supply.String(),
	})
}

func uniqueBalanceAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer cfg.Close()

	balance, err := cfg.UniqueAssetService().AmountOwned(
		c.Context,
		domain.AssetId(c.Uint64(assetIdFlagName)),
		domain.AccountId(c.String(accountFlagName)),
	)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{"balance": balance.String()})
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c)
	if err != nil {
		return nil, err
	}
	log.SetLevel(log.Level(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func printJSON(v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}
