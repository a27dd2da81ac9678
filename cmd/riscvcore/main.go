package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/riscv32core/riscv32core/internal/decode"
	"github.com/riscv32core/riscv32core/pkg/conformance"
	"github.com/riscv32core/riscv32core/pkg/hart"
	"github.com/riscv32core/riscv32core/pkg/snapshot"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "riscvcore",
		Short: "RISC-V RV32I/RV64M/RV32F instruction execution core",
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newStepCmd())
	rootCmd.AddCommand(newDisasmCmd())
	rootCmd.AddCommand(newConformanceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var image string
	var loadAddr uint64
	var entry uint64
	var maxSteps int
	var busSize int
	var saveTo string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a flat binary image and execute until trap or step limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(image)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			h := hart.New(entry, busSize)
			h.Bus.Load(loadAddr, data)

			steps := 0
			for ; maxSteps <= 0 || steps < maxSteps; steps++ {
				word := h.Bus.Load32(h.PC.Read())
				ext, ins, err := decode.Decode(word)
				if err != nil {
					fmt.Printf("stopped after %d steps: %v\n", steps, err)
					break
				}
				cause := h.Step(ext, ins)
				if !cause.Ok() {
					fmt.Printf("trapped after %d steps at PC=0x%X: %s\n", steps, h.PC.Read(), cause)
					break
				}
			}
			printRegisters(h)

			if saveTo != "" {
				if err := snapshot.Save(saveTo, h); err != nil {
					return fmt.Errorf("save snapshot: %w", err)
				}
				fmt.Printf("snapshot written to %s\n", saveTo)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "path to a flat binary image")
	cmd.Flags().Uint64Var(&loadAddr, "load-addr", 0, "bus address to load the image at")
	cmd.Flags().Uint64Var(&entry, "entry", 0, "initial PC")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 10000, "maximum instructions to execute (0 = unbounded)")
	cmd.Flags().IntVar(&busSize, "bus-size", 1<<20, "bus size in bytes")
	cmd.Flags().StringVar(&saveTo, "save", "", "write a snapshot of final hart state to this path")
	cmd.MarkFlagRequired("image")
	return cmd
}

func newStepCmd() *cobra.Command {
	var image string
	var loadAddr uint64
	var entry uint64
	var count int
	var busSize int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "step",
		Short: "Execute a fixed number of instructions, then print register state",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(image)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			h := hart.New(entry, busSize)
			h.Bus.Load(loadAddr, data)

			for i := 0; i < count; i++ {
				word := h.Bus.Load32(h.PC.Read())
				ext, ins, err := decode.Decode(word)
				if err != nil {
					return fmt.Errorf("decode at PC=0x%X: %w", h.PC.Read(), err)
				}
				pcBefore := h.PC.Read()
				cause := h.Step(ext, ins)
				if verbose {
					fmt.Printf("step %d: PC=0x%X %s opcode=%d -> %s\n", i, pcBefore, ext, ins.Opcode, cause)
				}
				if !cause.Ok() {
					break
				}
			}
			printRegisters(h)
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "path to a flat binary image")
	cmd.Flags().Uint64Var(&loadAddr, "load-addr", 0, "bus address to load the image at")
	cmd.Flags().Uint64Var(&entry, "entry", 0, "initial PC")
	cmd.Flags().IntVar(&count, "count", 1, "number of instructions to execute")
	cmd.Flags().IntVar(&busSize, "bus-size", 1<<20, "bus size in bytes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a trace line for each instruction executed")
	cmd.MarkFlagRequired("image")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm [word]",
		Short: "Decode a single instruction word (hex, e.g. 0x00a50533) and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word, err := strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				return fmt.Errorf("parse instruction word: %w", err)
			}
			ext, ins, err := decode.Decode(uint32(word))
			if err != nil {
				return err
			}
			fmt.Printf("extension=%s opcode=%d shape=%d rd=%d rs1=%d rs2=%d funct3=%d funct7=%d imm=%d\n",
				ext, ins.Opcode, ins.Shape, ins.Rd, ins.Rs1, ins.Rs2, ins.Funct3, ins.Funct7, ins.Imm)
			return nil
		},
	}
	return cmd
}

func newConformanceCmd() *cobra.Command {
	var numWorkers int
	var verbose bool
	var randomCount int
	var seed int64

	cmd := &cobra.Command{
		Use:   "conformance",
		Short: "Run the built-in conformance vectors against the execution core",
		RunE: func(cmd *cobra.Command, args []string) error {
			vectors := conformance.BuiltinVectors()
			if randomCount > 0 {
				vectors = append(vectors, conformance.RandomVectors(seed, randomCount)...)
			}

			pool := conformance.NewPool(numWorkers)
			pool.Run(vectors, verbose)

			passed, failed := pool.Report.Summary()
			for _, res := range pool.Report.Results() {
				if !res.Passed() {
					fmt.Printf("FAIL %s: %v\n", res.Name, res.Err)
				}
			}
			fmt.Printf("%d passed, %d failed, %d total\n", passed, failed, passed+failed)
			if failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&numWorkers, "workers", 0, "number of workers (0 = NumCPU)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print progress while running")
	cmd.Flags().IntVar(&randomCount, "random", 0, "additional randomized property vectors to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for randomized vectors")
	return cmd
}

func printRegisters(h *hart.Hart) {
	fmt.Printf("PC=0x%08X\n", h.PC.Read32())
	for i := 0; i < 32; i += 4 {
		fmt.Printf("x%-2d=0x%08X  x%-2d=0x%08X  x%-2d=0x%08X  x%-2d=0x%08X\n",
			i, h.X.ReadUnsigned(uint32(i)),
			i+1, h.X.ReadUnsigned(uint32(i+1)),
			i+2, h.X.ReadUnsigned(uint32(i+2)),
			i+3, h.X.ReadUnsigned(uint32(i+3)))
	}
}
