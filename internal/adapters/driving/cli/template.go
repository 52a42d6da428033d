package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage prompt templates",
	Long:  `List, inspect and edit the prompt templates placed ahead of exported materials.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show [template-id]",
	Short: "Print a template's full prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new template",
	RunE:  runTemplateCreate,
}

var templateUpdateCmd = &cobra.Command{
	Use:   "update [template-id]",
	Short: "Update an existing template",
	Long:  `Replaces the fields of an existing template. Flags that are not set keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateUpdate,
}

var templateDefaultCmd = &cobra.Command{
	Use:   "set-default [template-id]",
	Short: "Set the default template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDefault,
}

var (
	flagTemplateName        string
	flagTemplateDescription string
	flagTemplatePrompt      string
	flagTemplatePromptFile  string
)

func init() {
	templateCreateCmd.Flags().StringVarP(&flagTemplateName, "name", "n", "", "Template name (required)")
	templateCreateCmd.Flags().StringVarP(&flagTemplateDescription, "description", "d", "", "Template description")
	templateCreateCmd.Flags().StringVarP(&flagTemplatePrompt, "prompt", "p", "", "Prompt text")
	templateCreateCmd.Flags().StringVarP(&flagTemplatePromptFile, "prompt-file", "f", "", "Read the prompt text from a file")

	templateUpdateCmd.Flags().StringVarP(&flagTemplateName, "name", "n", "", "New template name")
	templateUpdateCmd.Flags().StringVarP(&flagTemplateDescription, "description", "d", "", "New template description")
	templateUpdateCmd.Flags().StringVarP(&flagTemplatePrompt, "prompt", "p", "", "New prompt text")
	templateUpdateCmd.Flags().StringVarP(&flagTemplatePromptFile, "prompt-file", "f", "", "Read the new prompt text from a file")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateCreateCmd)
	templateCmd.AddCommand(templateUpdateCmd)
	templateCmd.AddCommand(templateDefaultCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	templates := templateService.List()
	if len(templates) == 0 {
		cmd.Println("No templates found.")
		return nil
	}

	defaultID := templateService.Default().ID
	for i := range templates {
		marker := " "
		if templates[i].ID == defaultID {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, templates[i].ID)
		cmd.Printf("    %s\n", templates[i].Name)
		if templates[i].Description != "" {
			cmd.Printf("    %s\n", templates[i].Description)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d templates (* = default)\n", len(templates))
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	template, err := templateService.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	cmd.Printf("Template: %s\n\n", template.ID)
	cmd.Printf("  Name:        %s\n", template.Name)
	cmd.Printf("  Description: %s\n", template.Description)
	cmd.Printf("\n%s\n", template.Prompt)
	return nil
}

func runTemplateCreate(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	prompt := flagTemplatePrompt
	if flagTemplatePromptFile != "" {
		data, err := os.ReadFile(flagTemplatePromptFile)
		if err != nil {
			return fmt.Errorf("failed to read prompt file: %w", err)
		}
		prompt = string(data)
	}

	template, err := templateService.Create(flagTemplateName, flagTemplateDescription, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("invalid template: %w", err)
		}
		return fmt.Errorf("failed to create template: %w", err)
	}

	cmd.Printf("Created template %s (%s)\n", template.ID, template.Name)
	return nil
}

func runTemplateUpdate(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	template, err := templateService.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	if flagTemplateName != "" {
		template.Name = flagTemplateName
	}
	if flagTemplateDescription != "" {
		template.Description = flagTemplateDescription
	}
	if flagTemplatePromptFile != "" {
		data, readErr := os.ReadFile(flagTemplatePromptFile)
		if readErr != nil {
			return fmt.Errorf("failed to read prompt file: %w", readErr)
		}
		template.Prompt = string(data)
	} else if flagTemplatePrompt != "" {
		template.Prompt = flagTemplatePrompt
	}

	if err := templateService.Update(*template); err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	cmd.Printf("Updated template %s\n", template.ID)
	return nil
}

func runTemplateDefault(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	if err := templateService.SetDefault(args[0]); err != nil {
		return fmt.Errorf("failed to set default template: %w", err)
	}

	cmd.Printf("Default template set to %s\n", args[0])
	return nil
}
