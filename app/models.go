package app

import (
	"fmt"
	"log"

	"github.com/njwilson/chalk/nlp/parser/constituency"
	"github.com/njwilson/chalk/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"
)

var deleteModel bool

// Models lists the models in the store, or prints the manifest of each
// model named in args.
func Models(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"store"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 0 {
		if deleteModel {
			return errors.New("-delete requires model names")
		}
		names, err := s.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			manifest, err := s.Manifest(name)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\n", name, manifest[constituency.MODEL_ID_KEY])
		}
		return nil
	}
	for _, name := range args {
		if deleteModel {
			if err := s.Delete(name); err != nil {
				return err
			}
			log.Println("Deleted", name)
			continue
		}
		manifest, err := s.Manifest(name)
		if err != nil {
			return errors.Wrapf(err, "model %s", name)
		}
		fmt.Println(name)
		for _, key := range util.SortedKeys(manifest) {
			fmt.Printf("\t%s = %s\n", key, manifest[key])
		}
	}
	return nil
}

func ModelsCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Models,
		UsageLine: "models -store <dir> [model names]",
		Short:     "list, inspect or delete stored models",
		Long: `
list the models in a store, print the training manifest of named models, or
delete them

	$ ./chalk models -store <dir>
	$ ./chalk models -store <dir> <name> ...
	$ ./chalk models -store <dir> -delete <name> ...

`,
		Flag: *flag.NewFlagSet("models", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&storePath, "store", "", "model store directory")
	cmd.Flag.BoolVar(&deleteModel, "delete", false, "delete the named models")
	return cmd
}
